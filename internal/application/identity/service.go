package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/repository"
	"github.com/jhoicas/partsunlimited-catalog/pkg/jwt"
)

// Authenticator valida credenciales de un usuario.
type Authenticator interface {
	Authenticate(ctx context.Context, userName, password string) (*entity.ApplicationUser, error)
}

// CredentialIssuer emite una credencial (token) para un usuario autenticado.
type CredentialIssuer interface {
	IssueCredential(user *entity.ApplicationUser) (string, error)
}

var (
	_ Authenticator    = (*Service)(nil)
	_ CredentialIssuer = (*Service)(nil)
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegisterInput datos de alta. Password en texto plano, se hashea aquí.
type RegisterInput struct {
	UserName string
	Email    string
	Password string
	Name     string
}

// Service implementación del contrato de identidad sobre UserRepository.
type Service struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	cost   int
	now    func() time.Time
}

// NewService construye el servicio de identidad.
func NewService(users repository.UserRepository, jwtCfg JWTConfig) *Service {
	return &Service{users: users, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithHashCost ajusta el costo de bcrypt (los tests usan bcrypt.MinCost).
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

var upper = cases.Upper(language.Und)

// Normalize normaliza nombres de usuario y emails para búsquedas (mayúsculas invariantes).
func Normalize(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// Register crea un usuario. Devuelve ErrUserAlreadyExists si el nombre normalizado ya existe.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.ApplicationUser, error) {
	if strings.TrimSpace(in.UserName) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	normalized := Normalize(in.UserName)
	existing, err := s.users.FindByNormalizedUserName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.UserName
	}
	now := s.now()
	user := &entity.ApplicationUser{
		ID:                 uuid.New().String(),
		UserName:           strings.TrimSpace(in.UserName),
		NormalizedUserName: normalized,
		Email:              in.Email,
		NormalizedEmail:    Normalize(in.Email),
		PasswordHash:       string(hash),
		SecurityStamp:      uuid.New().String(),
		Name:               name,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureUser registra el usuario si no existe; si ya existe lo devuelve sin cambios.
func (s *Service) EnsureUser(ctx context.Context, in RegisterInput) (user *entity.ApplicationUser, created bool, err error) {
	existing, err := s.users.FindByNormalizedUserName(ctx, Normalize(in.UserName))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	user, err = s.Register(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Authenticate verifica nombre de usuario y password.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (*entity.ApplicationUser, error) {
	user, err := s.users.FindByNormalizedUserName(ctx, Normalize(userName))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// IssueCredential genera el JWT del usuario.
func (s *Service) IssueCredential(user *entity.ApplicationUser) (string, error) {
	if user == nil {
		return "", domain.ErrInvalidInput
	}
	return jwt.Generate(s.jwtCfg.Secret, s.jwtCfg.Issuer, jwt.Identity{
		UserID:        user.ID,
		UserName:      user.UserName,
		Name:          user.Name,
		SecurityStamp: user.SecurityStamp,
	}, s.jwtCfg.ExpMinutes)
}

// VerifyCredential valida un token emitido por IssueCredential: firma, vigencia y que el security
// stamp siga siendo el del usuario almacenado.
func (s *Service) VerifyCredential(ctx context.Context, token string) (*entity.ApplicationUser, error) {
	id, err := jwt.Parse(s.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	user, err := s.users.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.SecurityStamp != id.SecurityStamp {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
