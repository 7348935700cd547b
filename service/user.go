package service

import (
	"errors"
	"log"

	"sukoon/model"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the editable slice of the user row.
type Profile struct {
	Nickname    string `json:"nickname"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	DisplayLang string `json:"display_lang"`
}

func (service *UserService) Register(user *User) error {

	if model.UserExists(user.Username, user.Email) {
		return errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("internal server error")
	}

	newUser := &model.User{
		Username: user.Username,
		Email:    user.Email,
		Password: string(hashedPassword),
	}
	if err := model.CreateUser(newUser); err != nil {
		return errors.New("internal server error")
	}
	return nil
}

func (service *UserService) Login(user *User) (string, error) {
	registeredUser, err := model.GetUserByUsername(user.Username)
	if err != nil {
		return "", errors.New("failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registeredUser.Password), []byte(user.Password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	ts := &TokenService{}
	token, err := ts.CreateToken(registeredUser.ID, registeredUser.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return "", errors.New("failed to generate token")
	}

	return token.AccessToken, nil
}

func (service *UserService) GetProfile(userID uint) (*model.User, error) {
	return model.GetUserByID(userID)
}

func (service *UserService) UpdateProfile(userID uint, profile *Profile) error {
	fields := map[string]interface{}{}
	if profile.Nickname != "" {
		fields["nickname"] = profile.Nickname
	}
	if profile.Phone != "" {
		fields["phone"] = profile.Phone
	}
	if profile.Avatar != "" {
		fields["avatar"] = profile.Avatar
	}
	if profile.DisplayLang != "" {
		fields["display_lang"] = profile.DisplayLang
	}
	if len(fields) == 0 {
		return nil
	}
	return model.UpdateUserProfile(userID, fields)
}
