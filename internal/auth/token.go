package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("no active token for this user")
)

// Token est le jeton d'accès d'un utilisateur (un seul par utilisateur).
// La clé est opaque pour le client ; côté serveur c'est un JWT signé, la
// ligne en base restant la source de vérité (supprimée au logout).
type Token struct {
	Key       string     `gorm:"column:token_key;primaryKey;size:512"`
	UserID    uint       `gorm:"uniqueIndex;not null"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Token) TableName() string {
	return "auth_tokens"
}

type TokenService interface {
	Issue(userID uint) (string, error)
	Verify(key string) (uint, error)
	Revoke(userID uint) error
}

type DBTokenService struct {
	secret []byte
}

func NewDBTokenService(secret string) *DBTokenService {
	return &DBTokenService{secret: []byte(secret)}
}

// Issue renvoie le jeton existant de l'utilisateur ou en crée un
func (s *DBTokenService) Issue(userID uint) (string, error) {
	existing, err := findTokenByUser(userID)
	if err == nil {
		return existing.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup token: %w", err)
	}

	key, err := s.sign(userID)
	if err != nil {
		return "", err
	}

	token := Token{Key: key, UserID: userID}
	if err := database.DB.Create(&token).Error; err != nil {
		// Deux logins simultanés : on garde celui qui a gagné
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, err := findTokenByUser(userID); err == nil {
				return existing.Key, nil
			}
		}
		return "", fmt.Errorf("create token: %w", err)
	}
	return token.Key, nil
}

// Verify contrôle la signature avant de consulter la base
func (s *DBTokenService) Verify(key string) (uint, error) {
	parsed, err := jwt.Parse(key, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	claimedID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	var token Token
	if err := database.DB.First(&token, "token_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidToken
		}
		return 0, fmt.Errorf("lookup token: %w", err)
	}
	if uint64(token.UserID) != claimedID {
		return 0, ErrInvalidToken
	}
	return token.UserID, nil
}

func (s *DBTokenService) Revoke(userID uint) error {
	res := database.DB.Where("user_id = ?", userID).Delete(&Token{})
	if res.Error != nil {
		return fmt.Errorf("delete token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoToken
	}
	return nil
}

func (s *DBTokenService) sign(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatUint(uint64(userID), 10),
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	key, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return key, nil
}

func findTokenByUser(userID uint) (*Token, error) {
	var token Token
	if err := database.DB.Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
