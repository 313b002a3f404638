package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"

	"locallytrip-server/models"
	"locallytrip-server/services"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
)

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
	Role      string `json:"role"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleUserInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

type EmailRegisteredInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=256"`
}

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.LogInternalError(ctx, userExistsErr)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.LogInternalError(ctx, hashErr)
		return
	}

	role := models.RoleTraveler
	if userInput.Role == models.RoleHost {
		role = models.RoleHost
	}

	newUser = models.User{
		FirstName: userInput.FirstName,
		LastName:  userInput.LastName,
		Email:     strings.ToLower(userInput.Email),
		Password:  hashedPassword,
		Role:      role,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.LogInternalError(ctx, userExistsErr)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GoogleLoginOrSignUp verifies a Google ID token against Google's JWKS and
// signs the user in, creating the account on first sight.
func GoogleLoginOrSignUp(ctx iris.Context) {
	var userInput GoogleUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get("https://www.googleapis.com/oauth2/v3/certs")
	if httpErr != nil {
		utils.LogInternalError(ctx, httpErr)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.LogInternalError(ctx, bodyErr)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	if jwksErr != nil {
		utils.LogInternalError(ctx, jwksErr)
		return
	}

	token, tokenErr := jwt.Parse(userInput.IdentityToken, jwks.Keyfunc)
	if tokenErr != nil || !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	claims := token.Claims.(jwt.MapClaims)
	email := fmt.Sprint(claims["email"])
	if email == "" || email == "<nil>" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, email)
	if userExistsErr != nil {
		utils.LogInternalError(ctx, userExistsErr)
		return
	}

	if !userExists {
		user = models.User{
			FirstName:      fmt.Sprint(claims["given_name"]),
			LastName:       fmt.Sprint(claims["family_name"]),
			Email:          strings.ToLower(email),
			SocialLogin:    true,
			SocialProvider: "Google",
		}
		storage.DB.Create(&user)

		returnUser(user, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == "Google" {
		returnUser(user, ctx)
		return
	}

	utils.CreateEmailAlreadyRegistered(ctx)
}

func ForgotPassword(ctx iris.Context) {
	var emailInput EmailRegisteredInput
	err := ctx.ReadJSON(&emailInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, emailInput.Email)
	if userExistsErr != nil {
		utils.LogInternalError(ctx, userExistsErr)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email.", ctx)
		return
	}

	if user.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	token, tokenErr := utils.CreateForgotPasswordToken(user.ID, user.Email)
	if tokenErr != nil {
		utils.LogInternalError(ctx, tokenErr)
		return
	}

	link := os.Getenv("RESET_PASSWORD_LINK_BASE") + token
	subject := "Forgot Your Password?"
	html := `
	<p>It looks like you forgot your password.
	If you did, please click the link below to reset it.
	If you did not, disregard this email. Please update your password
	within 10 minutes, otherwise you will have to repeat this
	process. <a href=` + link + `>Click to Reset Password</a>
	</p><br />`

	emailSent, emailSentErr := utils.SendMail(user.Email, subject, html)
	if emailSentErr != nil {
		utils.LogInternalError(ctx, emailSentErr)
		return
	}

	ctx.JSON(iris.Map{"emailSent": emailSent})
}

func ResetPassword(ctx iris.Context) {
	var password ResetPasswordInput
	err := ctx.ReadJSON(&password)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(password.Password)
	if hashErr != nil {
		utils.LogInternalError(ctx, hashErr)
		return
	}

	claims := jsonWT.Get(ctx).(*utils.ForgotPasswordToken)

	storage.DB.Model(&models.User{}).Where("id = ?", claims.ID).Update("password", hashedPassword)

	ctx.JSON(iris.Map{"passwordReset": true})
}

func GetUserProfile(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.Preload("City").Preload("City.Country").First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "user": user})
}

func UpdateUserProfile(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input struct {
		FirstName string   `json:"firstName"`
		LastName  string   `json:"lastName"`
		Bio       string   `json:"bio"`
		AvatarURL string   `json:"avatarURL"`
		CityID    *uint    `json:"cityID"`
		Languages []string `json:"languages"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.CityID != nil {
		user.CityID = input.CityID
	}
	if input.Languages != nil {
		if raw, err := json.Marshal(input.Languages); err == nil {
			user.Languages = raw
		}
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "user": user})
}

type AlterSavedStoriesInput struct {
	StoryID uint   `json:"storyID" validate:"required"`
	Op      string `json:"op" validate:"required,oneof=add remove"`
}

// GetUserSavedStories resolves the caller's saved-story list into full
// published records; ids pointing at removed stories just drop out.
func GetUserSavedStories(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var savedIDs []uint
	if user.SavedStories != nil {
		if err := json.Unmarshal(user.SavedStories, &savedIDs); err != nil {
			utils.LogInternalError(ctx, err)
			return
		}
	}
	if len(savedIDs) == 0 {
		ctx.JSON(iris.Map{"success": true, "stories": []models.Story{}})
		return
	}

	var stories []models.Story
	if err := storage.DB.Preload("Author").Preload("City").
		Where("id IN ? AND status = ? AND is_active = ?", savedIDs, string(services.StatusPublished), true).
		Find(&stories).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "stories": stories})
}

// AlterUserSavedStories adds or removes a story id on the caller's saved list.
func AlterUserSavedStories(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var req AlterSavedStoriesInput
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if req.Op == "add" {
		var count int64
		storage.DB.Model(&models.Story{}).
			Where("id = ? AND is_active = ?", req.StoryID, true).
			Count(&count)
		if count == 0 {
			utils.CreateNotFound(ctx)
			return
		}
	}

	var current []uint
	if user.SavedStories != nil {
		if err := json.Unmarshal(user.SavedStories, &current); err != nil {
			utils.LogInternalError(ctx, err)
			return
		}
	}

	var saved []uint
	if req.Op == "add" {
		saved = current
		if !slices.Contains(current, req.StoryID) {
			saved = append(current, req.StoryID)
		}
	} else {
		for _, id := range current {
			if id != req.StoryID {
				saved = append(saved, id)
			}
		}
	}

	marshalled, marshalErr := json.Marshal(saved)
	if marshalErr != nil {
		utils.LogInternalError(ctx, marshalErr)
		return
	}
	user.SavedStories = marshalled

	if err := storage.DB.Model(&user).Update("saved_stories", user.SavedStories).Error; err != nil {
		utils.LogInternalError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.LogInternalError(ctx, tokenErr)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"isTrusted":    user.IsTrusted,
		"avatarURL":    user.AvatarURL,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
