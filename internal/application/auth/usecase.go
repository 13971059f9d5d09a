package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/domain"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
	"github.com/dmreyes/repuestos-api/pkg/jwt"
)

// Política de bloqueo por intentos fallidos: MaxAttempts fallos para el mismo
// username o la misma IP dentro de AttemptWindow bloquean durante
// LockoutDuration contados desde el último fallo.
const (
	MaxAttempts     = 5
	AttemptWindow   = 15 * time.Minute
	LockoutDuration = 15 * time.Minute
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login con bloqueo por intentos y bitácora de accesos.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	attemptRepo repository.LoginAttemptRepository
	jwtCfg      JWTConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, attemptRepo repository.LoginAttemptRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, attemptRepo: attemptRepo, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario con hash bcrypt. El rol es siempre seller:
// el registro es público y los admin se crean únicamente vía el seed.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleSeller,
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica credenciales aplicando la política de bloqueo. Cada intento,
// exitoso o no, queda registrado en login_attempts con IP y user agent.
func (uc *AuthUseCase) Login(in dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	now := uc.now()

	if retryAfter, locked, err := uc.lockoutRemaining(username, ipAddress, now); err != nil {
		return nil, err
	} else if locked {
		return nil, &domain.LockoutError{RetryAfterSeconds: retryAfter}
	}

	user, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Comparación dummy para mantener tiempo constante aunque el usuario no exista.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0glRShoKat7vBOySq8iIbnDoVIa"),
			[]byte(in.Password),
		)
		if err := uc.logAttempt(username, ipAddress, userAgent, false, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if err := uc.logAttempt(username, ipAddress, userAgent, false, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}

	if err := uc.logAttempt(username, ipAddress, userAgent, true, now); err != nil {
		return nil, err
	}
	if err := uc.attemptRepo.ClearFailures(username, now.Add(-AttemptWindow)); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// lockoutRemaining devuelve los segundos restantes de bloqueo si username o
// IP acumulan MaxAttempts fallos dentro de la ventana.
func (uc *AuthUseCase) lockoutRemaining(username, ipAddress string, now time.Time) (int, bool, error) {
	since := now.Add(-AttemptWindow)
	failures, err := uc.attemptRepo.CountRecentFailures(username, ipAddress, since)
	if err != nil {
		return 0, false, err
	}
	if failures < MaxAttempts {
		return 0, false, nil
	}
	last, err := uc.attemptRepo.LastFailure(username, ipAddress, since)
	if err != nil {
		return 0, false, err
	}
	if last == nil {
		return 0, false, nil
	}
	remaining := last.CreatedAt.Add(LockoutDuration).Sub(now)
	if remaining <= 0 {
		return 0, false, nil
	}
	return int(remaining.Seconds()), true, nil
}

func (uc *AuthUseCase) logAttempt(username, ipAddress, userAgent string, success bool, now time.Time) error {
	if len(userAgent) > 256 {
		userAgent = userAgent[:256]
	}
	return uc.attemptRepo.Create(&entity.LoginAttempt{
		ID:        uuid.New().String(),
		Username:  username,
		IPAddress: ipAddress,
		Success:   success,
		UserAgent: userAgent,
		CreatedAt: now,
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
