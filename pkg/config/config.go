package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
)

type Config struct {
	Environment    string
	Hostname       string
	BasePath       string
	UIUrl          string
	Postgresql     Postgresql
	Redis          Redis
	SMTP           SMTP
	Authentication Authentication
	AdminUser      AdminUser
}

func New() (Config, error) {
	environment, err := requireEnv("ENVIRONMENT")
	if err != nil {
		return Config{}, err
	}

	hostname, err := requireEnv("HOSTNAME")
	if err != nil {
		return Config{}, err
	}

	basePath, err := requireEnv("BASE_PATH")
	if err != nil {
		return Config{}, err
	}

	uiUrl, err := requireEnv("UI_URL")
	if err != nil {
		return Config{}, err
	}

	pg, err := newPostgresql()
	if err != nil {
		return Config{}, err
	}

	rd, err := newRedis()
	if err != nil {
		return Config{}, err
	}

	smtp, err := newSMTP()
	if err != nil {
		return Config{}, err
	}

	auth, err := newAuthentication()
	if err != nil {
		return Config{}, err
	}

	admin, err := newAdminUser()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Environment:    environment,
		Hostname:       hostname,
		BasePath:       basePath,
		UIUrl:          uiUrl,
		Postgresql:     pg,
		Redis:          rd,
		SMTP:           smtp,
		Authentication: auth,
		AdminUser:      admin,
	}, nil
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

func newPostgresql() (Postgresql, error) {
	host, err := requireEnv("DATABASE_HOST")
	if err != nil {
		return Postgresql{}, err
	}

	port, err := requireEnvAsInt("DATABASE_PORT")
	if err != nil {
		return Postgresql{}, err
	}

	username, err := requireEnv("DATABASE_USERNAME")
	if err != nil {
		return Postgresql{}, err
	}

	password, err := requireEnv("DATABASE_PASSWORD")
	if err != nil {
		return Postgresql{}, err
	}

	name, err := requireEnv("DATABASE_NAME")
	if err != nil {
		return Postgresql{}, err
	}

	return Postgresql{
		Host:         host,
		Port:         port,
		Username:     username,
		Password:     password,
		DatabaseName: name,
	}, nil
}

type Redis struct {
	Host string
	Port int
}

func newRedis() (Redis, error) {
	host, err := requireEnv("REDIS_HOST")
	if err != nil {
		return Redis{}, err
	}

	port, err := requireEnvAsInt("REDIS_PORT")
	if err != nil {
		return Redis{}, err
	}

	return Redis{Host: host, Port: port}, nil
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

func newSMTP() (SMTP, error) {
	host, err := requireEnv("SMTP_HOST")
	if err != nil {
		return SMTP{}, err
	}

	port, err := requireEnvAsInt("SMTP_PORT")
	if err != nil {
		return SMTP{}, err
	}

	username, err := requireEnv("SMTP_USERNAME")
	if err != nil {
		return SMTP{}, err
	}

	password, err := requireEnv("SMTP_PASSWORD")
	if err != nil {
		return SMTP{}, err
	}

	return SMTP{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}, nil
}

type Authentication struct {
	PrivateKey                    *rsa.PrivateKey
	RefreshTokenSecretKey         string
	AccessTokenExpirationSeconds  int
	RefreshTokenExpirationSeconds int
	SameSiteMode                  http.SameSite
}

func newAuthentication() (Authentication, error) {
	privateKey, err := newPrivateKey()
	if err != nil {
		return Authentication{}, err
	}

	refreshTokenSecretKey, err := requireEnv("REFRESH_TOKEN_SECRET_KEY")
	if err != nil {
		return Authentication{}, err
	}

	accessTokenExpirationSeconds, err := requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_IN_SECONDS")
	if err != nil {
		return Authentication{}, err
	}

	refreshTokenExpirationSeconds, err := requireEnvAsInt("REFRESH_TOKEN_EXPIRATION_IN_SECONDS")
	if err != nil {
		return Authentication{}, err
	}

	sameSiteMode, err := newSameSiteMode()
	if err != nil {
		return Authentication{}, err
	}

	return Authentication{
		PrivateKey:                    privateKey,
		RefreshTokenSecretKey:         refreshTokenSecretKey,
		AccessTokenExpirationSeconds:  accessTokenExpirationSeconds,
		RefreshTokenExpirationSeconds: refreshTokenExpirationSeconds,
		SameSiteMode:                  sameSiteMode,
	}, nil
}

func newPrivateKey() (*rsa.PrivateKey, error) {
	privateKeyPem, err := requireEnv("PRIVATE_KEY")
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode([]byte(privateKeyPem))
	if block == nil {
		return nil, errors.New("failed to decode private key pem block")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}

	return privateKey, nil
}

func newSameSiteMode() (http.SameSite, error) {
	sameSiteMode, err := requireEnv("SAME_SITE_MODE")
	if err != nil {
		return 0, err
	}

	switch sameSiteMode {
	case "default":
		return http.SameSiteDefaultMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}

	return 0, fmt.Errorf("failed to parse same site mode: %s", sameSiteMode)
}

type AdminUser struct {
	Email    string
	Password string
}

func newAdminUser() (AdminUser, error) {
	email, err := requireEnv("ADMIN_USER_EMAIL")
	if err != nil {
		return AdminUser{}, err
	}

	password, err := requireEnv("ADMIN_USER_PASSWORD")
	if err != nil {
		return AdminUser{}, err
	}

	return AdminUser{Email: email, Password: password}, nil
}

func requireEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return "", fmt.Errorf("can't find environment variable: %s", key)
	}
	return value, nil
}

func requireEnvAsInt(key string) (int, error) {
	valueStr, err := requireEnv(key)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("can't parse %s as integer: %v", key, err)
	}

	return value, nil
}
