package api

import (
	"context"                           // Context for Redis operations
	"net/http"                          // HTTP status codes
	"petcontest_system/internal/domain" // Importing domain models
	"petcontest_system/internal/utils"  // Utility functions
	"time"                              // Time durations and date parsing

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache key for the pet listing
const petsCacheKey = "pets:all"

// Request struct for pet registration, field names follow the public API
type CreatePetRequest struct {
	Nome      string `json:"nome" binding:"required"`       // Pet name must be provided
	Raca      string `json:"raca" binding:"required"`       // Breed must be provided
	BirthDate string `json:"birth_date" binding:"required"` // Birth date must be provided, YYYY-MM-DD
	Especie   string `json:"especie"`                       // Species, optional
	OwnerID   uint   `json:"owner_id"`                      // Owning user, optional
}

// petPayload is the pet shape returned to clients
func petPayload(pet *domain.Pet) gin.H {
	return gin.H{
		"id":         pet.ID,                               // Pet ID
		"name":       pet.Name,                             // Pet name
		"type":       pet.Type,                             // Species
		"breed":      pet.Breed,                            // Breed
		"birth_date": pet.BirthDate.Format("2006-01-02"),   // Birth date
		"owner_id":   pet.OwnerID,                          // Owning user ID
	}
}

// ListPetsHandler returns all registered pets
func ListPetsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []gin.H          // Cached pet list
		// Try to get the listing from cache
		if found, err := utils.GetCache(ctx, rdb, petsCacheKey, &cached); err == nil && found {
			// Return the cached listing
			c.JSON(http.StatusOK, gin.H{"success": true, "pets": cached, "cached": true})
			return
		}
		var pets []domain.Pet // Slice to hold pets
		// Fetch all pets in stable insertion order
		if err := db.Order("id").Find(&pets).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao listar pets"})
			return
		}
		list := make([]gin.H, 0, len(pets)) // Response payload
		for i := range pets {
			list = append(list, petPayload(&pets[i])) // Map each pet
		}
		_ = utils.SetCache(ctx, rdb, petsCacheKey, list, 60*time.Second) // Cache the listing for 60 seconds
		c.JSON(http.StatusOK, gin.H{"success": true, "pets": list, "cached": false})
	}
}

// CreatePetHandler registers a new pet
func CreatePetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nome, raça e data de nascimento são obrigatórios."})
			return
		}
		// Parse the birth date
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			// If the date is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Data de nascimento inválida. Use o formato YYYY-MM-DD."})
			return
		}
		// Create the pet record
		pet := domain.Pet{Name: req.Nome, Type: req.Especie, Breed: req.Raca, BirthDate: birthDate, OwnerID: req.OwnerID}
		if err := db.Create(&pet).Error; err != nil {
			// If creation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao cadastrar pet"})
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"pet_id":   pet.ID,      // Pet ID
			"name":     pet.Name,    // Pet name
			"owner_id": pet.OwnerID, // Owning user ID
		}).Info("Pet registered") // Log pet registration
		// Invalidate the pet listing cache
		_ = utils.DeleteCache(context.Background(), rdb, petsCacheKey)
		// Return success response with the created pet
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Pet cadastrado com sucesso!",
			"pet":     petPayload(&pet),
		})
	}
}
