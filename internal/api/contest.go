package api

import (
	"context"                           // Context for Redis operations
	"net/http"                          // HTTP status codes
	"os"                                // Filesystem operations for stored images
	"path/filepath"                     // Path manipulation
	"petcontest_system/internal/domain" // Importing domain models
	"petcontest_system/internal/utils"  // Utility functions
	"strconv"                           // String conversion
	"strings"                           // String manipulation
	"time"                              // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // UUIDs for stored image filenames
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key for the contest photo listing
const photosCacheKey = "concurso:fotos"

// Public path under which uploaded images are served
const uploadURLPrefix = "/static/uploads/"

// photoRow is one entry of the photo listing, joined with its owner
type photoRow struct {
	ID        uint   `json:"id"`         // Submission ID
	ImagemURL string `json:"imagem_url"` // Public image path
	Descricao string `json:"descricao"`  // Caption
	UserName  string `json:"user_name"`  // Owner display name
	UserEmail string `json:"user_email"` // Owner email, drives the delete affordance
	Votos     int    `json:"votos"`      // Vote tally
}

// callerEmail resolves the identity of the caller: the session token email
// when one was presented, otherwise the client-supplied email
func callerEmail(c *gin.Context, supplied string) string {
	// A validated session token overrides whatever the client claims
	if email, exists := c.Get("userEmail"); exists {
		return email.(string)
	}
	return strings.ToLower(supplied) // Fall back to the legacy email contract
}

// SubmitPhotoHandler accepts a multipart contest submission
func SubmitPhotoHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		petIDStr := c.PostForm("pet_id")                  // Submitted pet ID
		email := callerEmail(c, c.PostForm("user_email")) // Caller identity
		descricao := c.PostForm("descricao")              // Optional caption
		file, err := c.FormFile("imagem")                 // Uploaded image
		// Validate required fields
		if petIDStr == "" || email == "" || err != nil {
			// If anything required is missing, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pet, email e imagem são obrigatórios"})
			return
		}
		var user domain.User // Resolve the caller to a user
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			// Unknown caller, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuário não encontrado."})
			return
		}
		// Parse the pet ID
		petID, err := strconv.Atoi(petIDStr)
		if err != nil {
			// Malformed pet ID, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pet não encontrado."})
			return
		}
		var pet domain.Pet // The pet being submitted
		if err := db.First(&pet, petID).Error; err != nil {
			// Unknown pet, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Pet não encontrado."})
			return
		}
		// The submitted pet must belong to the caller
		if pet.OwnerID != user.ID {
			// Not the owner, return forbidden
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Este pet não pertence a você."})
			return
		}
		// Store the image under an unguessable name, keeping the extension
		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".jpg" // Default extension
		}
		filename := uuid.NewString() + ext // Stored filename
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
			// If storing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao salvar imagem"})
			return
		}
		// Create the submission with a zero vote count
		photo := domain.ContestPhoto{
			PetID:       pet.ID,                    // Submitted pet
			UserID:      user.ID,                   // Owning user
			ImageURL:    uploadURLPrefix + filename, // Public image path
			Description: descricao,                 // Caption
			Votes:       0,                         // Votes start at zero
		}
		if err := db.Create(&photo).Error; err != nil {
			// If creation fails, remove the orphaned image and return an error
			_ = os.Remove(filepath.Join(uploadDir, filename))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao enviar foto"})
			return
		}
		// Log the submission
		logrus.WithFields(logrus.Fields{
			"photo_id": photo.ID,  // Submission ID
			"pet_id":   pet.ID,    // Pet ID
			"user_id":  user.ID,   // User ID
		}).Info("Contest photo submitted") // Log submission
		// Invalidate the photo listing cache
		_ = utils.DeleteCache(context.Background(), rdb, photosCacheKey)
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Foto enviada com sucesso!"})
	}
}

// ListPhotosHandler returns all contest photos in insertion order
func ListPhotosHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []photoRow       // Cached listing
		// Try to get the listing from cache
		if found, err := utils.GetCache(ctx, rdb, photosCacheKey, &cached); err == nil && found {
			// Return the cached listing
			c.JSON(http.StatusOK, gin.H{"success": true, "fotos": cached, "cached": true})
			return
		}
		rows := []photoRow{} // Listing payload, empty slice serializes as []
		// Join each photo with its owning user
		if err := db.Table("contest_photos").
			Select("contest_photos.id, contest_photos.image_url AS imagem_url, contest_photos.description AS descricao, users.name AS user_name, users.email AS user_email, contest_photos.votes AS votos").
			Joins("JOIN users ON users.id = contest_photos.user_id").
			Order("contest_photos.id").
			Scan(&rows).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao carregar fotos"})
			return
		}
		_ = utils.SetCache(ctx, rdb, photosCacheKey, rows, 60*time.Second) // Cache the listing for 60 seconds
		c.JSON(http.StatusOK, gin.H{"success": true, "fotos": rows, "cached": false})
	}
}

// VotePhotoHandler registers one vote on a contest photo
func VotePhotoHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse the photo ID from the path
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			// Malformed ID, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Foto não encontrada."})
			return
		}
		// Single atomic increment so concurrent votes never lose updates
		res := db.Model(&domain.ContestPhoto{}).
			Where("id = ?", id).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1))
		if res.Error != nil {
			// If the update fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao registrar voto"})
			return
		}
		// No row matched, the photo does not exist
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Foto não encontrada."})
			return
		}
		// Log the vote
		logrus.WithFields(logrus.Fields{
			"photo_id": id, // Submission ID
		}).Info("Contest vote registered") // Log vote
		// Invalidate the photo listing cache
		_ = utils.DeleteCache(context.Background(), rdb, photosCacheKey)
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Voto registrado com sucesso!"})
	}
}

// DeletePhotoHandler removes a contest photo, allowed only for its owner
func DeletePhotoHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse the photo ID from the path
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			// Malformed ID, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Foto não encontrada."})
			return
		}
		// Resolve the caller identity
		email := callerEmail(c, c.Query("user_email"))
		if email == "" {
			// No identity supplied, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email é obrigatório"})
			return
		}
		var photo domain.ContestPhoto // The photo to delete
		if err := db.First(&photo, id).Error; err != nil {
			// Unknown photo, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Foto não encontrada."})
			return
		}
		var owner domain.User // The photo's owner
		if err := db.First(&owner, photo.UserID).Error; err != nil {
			// Owner record missing, treat as internal error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao deletar foto"})
			return
		}
		// Deletion is permitted only for the owner
		if owner.Email != email {
			// Not the owner, return forbidden
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Você não tem permissão para deletar esta foto."})
			return
		}
		// Remove the database record
		if err := db.Delete(&photo).Error; err != nil {
			// If the delete fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao deletar foto"})
			return
		}
		// Remove the stored image, a leftover file is harmless
		_ = os.Remove(filepath.Join(uploadDir, filepath.Base(photo.ImageURL)))
		// Log the deletion
		logrus.WithFields(logrus.Fields{
			"photo_id": photo.ID, // Submission ID
			"user_id":  owner.ID, // Owner user ID
		}).Info("Contest photo deleted") // Log deletion
		// Invalidate the photo listing cache
		_ = utils.DeleteCache(context.Background(), rdb, photosCacheKey)
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Foto deletada com sucesso!"})
	}
}
