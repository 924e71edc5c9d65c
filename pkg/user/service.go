// Package user manages resident accounts: sign-up with email validation,
// credential checks and the roles gating administration and attendance.
package user

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/apartment-life/backend/internal/errdef"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/go-mail/mail"
	"golang.org/x/crypto/argon2"
)

func NewService(uiUrl string, repository *repository, dialer dialer) *Service {
	return &Service{
		uiUrl:      uiUrl,
		repository: repository,
		dialer:     dialer,
	}
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	uiUrl      string
	repository *repository
	dialer     dialer
}

func (s Service) Save(ctx context.Context, user *model.User) error {
	return s.repository.save(ctx, user)
}

func (s Service) SignUp(ctx context.Context, email, password, name, apartmentNumber string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	user := &model.User{
		Email:           email,
		Password:        hashedPassword,
		Name:            name,
		ApartmentNumber: apartmentNumber,
		EmailToken:      uuid.New(),
	}

	err = s.sendValidationEmail(user)
	if err != nil {
		return nil, fmt.Errorf("failed to send validation email: %s", err)
	}

	err = s.repository.create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s Service) sendValidationEmail(user *model.User) error {
	m := mail.NewMessage()
	m.SetHeader("From", "Apartment Life <no-reply@apartment-life.org>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Welcome to Apartment Life")
	link := fmt.Sprintf("%s/validate/%s", s.uiUrl, user.EmailToken)
	body := fmt.Sprintf("Hello %s, please click the below link to verify your email.<br/>%s", user.Name, link)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s Service) ValidateEmail(ctx context.Context, token uuid.UUID) error {
	user, err := s.repository.findByEmailToken(ctx, token)
	if err != nil {
		return err
	}

	user.Validated = true
	return s.repository.save(ctx, user)
}

func (s Service) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	unauthorizedError := "invalid email and password combination"

	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized(unauthorizedError)
		}
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password comparison failed: %s", err)
	}

	if !match {
		return nil, errdef.NewUnauthorized(unauthorizedError)
	}

	if !user.Validated {
		return nil, errdef.NewForbidden("account not validated")
	}

	return user, nil
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

// FindOrCreate is used to bootstrap the administrator account on startup.
func (s Service) FindOrCreate(ctx context.Context, email, password, name string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %s", err)
	}

	user := &model.User{
		Email:      email,
		Password:   hashedPassword,
		Name:       name,
		Role:       model.RoleAdmin,
		EmailToken: uuid.New(),
	}

	return s.repository.findOrCreate(ctx, user)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}

func (s Service) UpdateApartmentNumber(ctx context.Context, id uint, apartmentNumber string) (*model.User, error) {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ApartmentNumber = apartmentNumber
	if err := s.repository.save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateRole changes a user's role. Only called from administrator routes.
func (s Service) UpdateRole(ctx context.Context, id uint, role string) (*model.User, error) {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.repository.save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

const (
	argonMemory  = 131072
	argonTime    = 3
	argonThreads = 4
	argonKeyLen  = 32
)

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	hashedPassword := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return hashedPassword, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	parts := strings.Split(storedPassword, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("wrong password hash format")
	}

	var memory, time uint32
	var threads uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads)
	if err != nil {
		return false, fmt.Errorf("unable to parse password hash parameters: %v", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("unable to decode password salt")
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("unable to decode password hash")
	}

	suppliedHash := argon2.IDKey([]byte(suppliedPassword), salt, time, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, suppliedHash) == 1, nil
}
