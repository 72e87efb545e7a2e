package api

import (
	"net/http"                          // HTTP status codes
	"petcontest_system/internal/domain" // Importing domain models
	"strings"                           // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListUsersHandler returns users, optionally filtered by exact email.
// The contest page uses this to resolve an email to a user ID.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&domain.User{}) // Base query over users
		// Filter by exact email when the query parameter is present
		if email := c.Query("email"); email != "" {
			query = query.Where("email = ?", strings.ToLower(email))
		}
		var users []domain.User // Slice to hold users
		if err := query.Order("id").Find(&users).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"users": []gin.H{}})
			return
		}
		list := make([]gin.H, 0, len(users)) // Response payload
		for i := range users {
			list = append(list, userPayload(&users[i])) // Map each user, hash excluded
		}
		c.JSON(http.StatusOK, gin.H{"users": list}) // Return the user list
	}
}
