package api

import (
	"net/http"                          // HTTP status codes
	"petcontest_system/internal/domain" // Importing domain models
	"petcontest_system/internal/utils"  // Utility functions
	"strings"                           // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`         // Display name must be provided
	Email    string `json:"email" binding:"required,email"`  // Email must be provided and well-formed
	Password string `json:"password" binding:"required"`     // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for password change
type ChangePasswordRequest struct {
	Email           string `json:"email" binding:"required"`            // Email must be provided
	CurrentPassword string `json:"current_password" binding:"required"` // Current password must be provided
	NewPassword     string `json:"new_password" binding:"required"`     // New password must be provided
}

// Request struct for password reset
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
}

// userPayload is the user shape returned to clients, never including the hash
func userPayload(user *domain.User) gin.H {
	return gin.H{
		"id":    user.ID,    // User ID
		"name":  user.Name,  // Display name
		"email": user.Email, // Email
	}
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nome, email e senha são obrigatórios"})
			return
		}
		// Hash the password before storing it
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao registrar usuário"})
			return
		}
		// Create user with lowercase email to ensure uniqueness
		user := domain.User{Name: req.Name, Email: strings.ToLower(req.Email), Password: string(hash)}
		// Attempt to create the user; the unique index makes the
		// duplicate check and the insert a single atomic step
		if err := db.Create(&user).Error; err != nil {
			// Duplicate email, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email já cadastrado."})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // User ID
			"email":   user.Email, // Email
		}).Info("User registered") // Log registration
		// Return success response with the created user
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Usuário registrado com sucesso!",
			"user":    userPayload(&user),
		})
	}
}

// LoginHandler authenticates a user and returns the user plus a session token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email e senha são obrigatórios"})
			return
		}
		// Authenticate the credentials
		user, ok := authenticate(db, req.Email, req.Password)
		if !ok {
			// Unknown email and wrong password are indistinguishable to the caller
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Credenciais inválidas"})
			return
		}
		// Generate the session token
		token, err := utils.GenerateJWT(user.Email, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao autenticar"})
			return
		}
		// Return the user and token in the response
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login realizado com sucesso!",
			"user":    userPayload(user),
			"token":   token,
		})
	}
}

// ChangePasswordHandler overwrites a user's password after verifying the current one
func ChangePasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email, senha atual e nova senha são obrigatórios"})
			return
		}
		// The change is authorized by the same check login performs
		user, ok := authenticate(db, req.Email, req.CurrentPassword)
		if !ok {
			// Wrong current credentials, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Senha atual incorreta."})
			return
		}
		// Hash the new password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao alterar senha"})
			return
		}
		// Overwrite the stored password
		if err := db.Model(user).Update("password", string(hash)).Error; err != nil {
			// If the update fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao alterar senha"})
			return
		}
		// Log the password change
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
		}).Info("Password changed") // Log password change
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Senha alterada com sucesso!"})
	}
}

// ResetPasswordHandler assigns a generated temporary password and returns it.
// When a mailer is configured the password is also dispatched by email.
func ResetPasswordHandler(db *gorm.DB, mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email é obrigatório"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// Unknown email, return not found
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuário não encontrado."})
			return
		}
		// Generate a cryptographically secure temporary password
		tempPassword, err := utils.GenerateTempPassword(utils.TempPasswordLength)
		if err != nil {
			// If generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao redefinir senha"})
			return
		}
		// Hash and store the temporary password
		hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao redefinir senha"})
			return
		}
		// Overwrite the stored password
		if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
			// If the update fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao redefinir senha"})
			return
		}
		// Dispatch the temporary password by email when a mailer is configured
		if mailer != nil {
			if err := mailer.SendTempPassword(user.Name, user.Email, tempPassword); err != nil {
				// Mail failure does not fail the reset, the password is still returned
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,     // User ID
					"error":   err.Error(), // Error message
				}).Error("Failed to send reset email") // Log mail failure
			}
		}
		// Log the password reset
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
		}).Info("Password reset") // Log password reset
		// Return the temporary password to the caller
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"message":       "Senha temporária gerada com sucesso!",
			"temp_password": tempPassword,
		})
	}
}

// authenticate looks up a user by email and verifies the password against the
// stored hash. Returns the user and whether the credentials are valid.
func authenticate(db *gorm.DB, email, password string) (*domain.User, bool) {
	var user domain.User // Fetch user from database
	if err := db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, false // No user with this email
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, false // Password does not verify
	}
	return &user, true // Credentials are valid
}
