package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser crea un usuario con rol cliente. Si la solicitud trae rol, actor debe ser un
// administrador autenticado; de lo contrario devuelve ErrForbidden.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest, actor *entity.User) (*dto.UserResponse, error) {
	if in.Rol != "" && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede asignar roles", domain.ErrForbidden)
	}
	return uc.register(ctx, in)
}

// RegisterTrusted crea un usuario aceptando el rol indicado. Solo para contextos de confianza (CLI de seed).
func (uc *AuthUseCase) RegisterTrusted(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.register(ctx, in)
}

func (uc *AuthUseCase) register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.TrimSpace(in.Email)
	if in.Nombre == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nombre, email y password son obligatorios", domain.ErrInvalidInput)
	}
	role := in.Rol
	if role == "" {
		role = entity.RoleCliente
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Name:         in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	// El índice único de email cubre la carrera entre la consulta y el insert.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, emite un token nuevo y lo guarda como única sesión activa.
// Con credenciales incorrectas no se modifica el token almacenado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateToken(ctx, user.ID, token); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *ToUserResponse(user),
	}, nil
}

// Authenticate resuelve el usuario dueño del token. La firma se valida primero;
// la coincidencia exacta con el token guardado decide si la sesión sigue vigente.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID != userID {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ToUserResponse mapea la entidad a su salida pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:     u.ID,
		Nombre: u.Name,
		Email:  u.Email,
		Rol:    u.Role,
	}
}
