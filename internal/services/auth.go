package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/normalization"
	"github.com/jarahq/jara-backend/internal/repos"
	"github.com/jarahq/jara-backend/internal/requestdata"
	"github.com/jarahq/jara-backend/internal/types"
	"github.com/jarahq/jara-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// otpTTL bounds how long an emailed one-time code stays redeemable.
const otpTTL = 10 * time.Minute

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	VerifyOTP(ctx context.Context, email, code string, purpose types.OTPPurpose) (string, string, error)
	ResetPassword(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
	OAuthLogin(ctx context.Context, email, name string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	userOTPRepo   repos.UserOTPRepo
	mailer        Mailer
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	userOTPRepo repos.UserOTPRepo,
	mailer Mailer,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		userOTPRepo:   userOTPRepo,
		mailer:        mailer,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(ctx, user)
	if vErr := utils.InputValidation(ctx, "registration", as.userRepo, as.log, user, "", ""); vErr != nil {
		return apierr.ValidationRejected(vErr)
	}
	if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
		return hErr
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	// Verification code failure never undoes the registration; the user can
	// request a fresh code through the reset flow.
	if otpErr := as.issueOTP(ctx, user, types.OTPPurposeSignup); otpErr != nil {
		as.log.Warn("Could not issue signup verification code", "error", otpErr)
	}
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = normalization.ParseInputString(email)

	if vErr := utils.InputValidation(ctx, "login", as.userRepo, as.log, nil, email, password); vErr != nil {
		return "", "", apierr.ValidationRejected(vErr)
	}

	user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
	if uErr != nil {
		if errors.Is(uErr, gorm.ErrRecordNotFound) {
			return "", "", apierr.Unauthorized(fmt.Errorf("invalid email or password"))
		}
		return "", "", fmt.Errorf("error retrieving user by email: %w", uErr)
	}

	if hErr := utils.CheckPassword(user.Password, password); hErr != nil {
		return "", "", apierr.Unauthorized(fmt.Errorf("invalid email or password"))
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tokenErr error
		accessToken, refreshToken, tokenErr = as.issueTokenPair(ctx, tx, user)
		return tokenErr
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// VerifyOTP redeems an emailed one-time code and opens a session. A signup
// code additionally marks the email verified. Unknown emails, wrong codes and
// expired codes all read the same to the caller.
func (as *authService) VerifyOTP(ctx context.Context, email, code string, purpose types.OTPPurpose) (string, string, error) {
	email = normalization.ParseInputString(email)
	if email == "" || code == "" {
		return "", "", apierr.ValidationRejected(fmt.Errorf("email and code are required"))
	}
	if purpose != types.OTPPurposeSignup && purpose != types.OTPPurposeRecovery {
		return "", "", apierr.ValidationRejected(fmt.Errorf("unknown code purpose"))
	}

	var accessToken string
	var refreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, vErr := as.redeemOTP(ctx, tx, email, code, purpose)
		if vErr != nil {
			return vErr
		}
		if purpose == types.OTPPurposeSignup && !user.EmailVerified {
			user.EmailVerified = true
			if uErr := as.userRepo.Update(ctx, tx, user); uErr != nil {
				return fmt.Errorf("failed to mark email verified: %w", uErr)
			}
		}
		var tokenErr error
		accessToken, refreshToken, tokenErr = as.issueTokenPair(ctx, tx, user)
		return tokenErr
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ResetPassword emails a recovery code. It reports success for unknown
// emails so the endpoint cannot be used to discover which accounts exist.
func (as *authService) ResetPassword(ctx context.Context, email string) error {
	email = normalization.ParseInputString(email)
	if email == "" {
		return apierr.ValidationRejected(fmt.Errorf("email is required"))
	}

	user, uErr := as.userRepo.GetByEmail(ctx, nil, email)
	if uErr != nil {
		if errors.Is(uErr, gorm.ErrRecordNotFound) {
			as.log.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error retrieving user by email: %w", uErr)
	}
	return as.issueOTP(ctx, user, types.OTPPurposeRecovery)
}

// ConfirmPasswordReset redeems a recovery code and replaces the password in
// one step. Every outstanding session of the user is revoked.
func (as *authService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = normalization.ParseInputString(email)
	if email == "" || code == "" {
		return apierr.ValidationRejected(fmt.Errorf("email and code are required"))
	}
	if len(newPassword) < 8 {
		return apierr.ValidationRejected(fmt.Errorf("password must be at least 8 characters long"))
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, vErr := as.redeemOTP(ctx, tx, email, code, types.OTPPurposeRecovery)
		if vErr != nil {
			return vErr
		}
		user.Password = newPassword
		if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
			return hErr
		}
		if uErr := as.userRepo.Update(ctx, tx, user); uErr != nil {
			return fmt.Errorf("failed to update password: %w", uErr)
		}
		if dErr := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); dErr != nil {
			return fmt.Errorf("failed to revoke sessions after reset: %w", dErr)
		}
		return nil
	})
}

// OAuthLogin opens a session for an identity the OAuth provider already
// verified, creating the local user on first sign-in. The generated password
// is unguessable; such accounts sign in through the provider or a reset.
func (as *authService) OAuthLogin(ctx context.Context, email, name string) (string, string, error) {
	email = normalization.ParseInputString(email)
	if email == "" {
		return "", "", apierr.ValidationRejected(fmt.Errorf("provider returned no email"))
	}

	var accessToken string
	var refreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, uErr := as.userRepo.GetByEmail(ctx, tx, email)
		if uErr != nil {
			if !errors.Is(uErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("error retrieving user by email: %w", uErr)
			}
			if name == "" {
				name = email
			}
			user = &types.User{
				ID:            uuid.New(),
				Email:         email,
				Name:          name,
				Password:      uuid.NewString() + uuid.NewString(),
				EmailVerified: true,
			}
			if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
				return hErr
			}
			if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
				return fmt.Errorf("failed to create user: %w", cErr)
			}
		} else if !user.EmailVerified {
			user.EmailVerified = true
			if upErr := as.userRepo.Update(ctx, tx, user); upErr != nil {
				return fmt.Errorf("failed to mark email verified: %w", upErr)
			}
		}
		var tokenErr error
		accessToken, refreshToken, tokenErr = as.issueTokenPair(ctx, tx, user)
		return tokenErr
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return "", "", apierr.Unauthorized(fmt.Errorf("no request data found in context"))
	}
	if rd.RefreshToken == "" {
		return "", "", apierr.Unauthorized(fmt.Errorf("refresh token not found in request data"))
	}

	var accessToken string
	var newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existingToken, ftErr := as.userTokenRepo.GetByRefreshToken(ctx, tx, rd.RefreshToken)
		if ftErr != nil {
			if errors.Is(ftErr, gorm.ErrRecordNotFound) {
				return apierr.Unauthorized(fmt.Errorf("unknown refresh token"))
			}
			return fmt.Errorf("error fetching refresh token: %w", ftErr)
		}
		if existingToken.ExpiresAt.Before(time.Now()) {
			if dtErr := as.userTokenRepo.DeleteByAccessToken(ctx, tx, existingToken.AccessToken); dtErr != nil {
				return fmt.Errorf("refresh token expired, error deleting: %w", dtErr)
			}
			return apierr.Unauthorized(fmt.Errorf("refresh token expired"))
		}
		user, uErr := as.userRepo.GetByID(ctx, tx, existingToken.UserID)
		if uErr != nil {
			return fmt.Errorf("failed to load user for refresh: %w", uErr)
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("failed to generate new access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newUserToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
			return fmt.Errorf("failed to create new user token: %w", cErr)
		}
		if dErr := as.userTokenRepo.DeleteByAccessToken(ctx, tx, existingToken.AccessToken); dErr != nil {
			return fmt.Errorf("failed to remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Unauthorized(fmt.Errorf("no request data found in context"))
	}
	if rd.TokenString == "" {
		return apierr.Unauthorized(fmt.Errorf("token string in request data empty"))
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tdErr := as.userTokenRepo.DeleteByAccessToken(ctx, tx, rd.TokenString); tdErr != nil {
			return fmt.Errorf("error deleting user token: %w", tdErr)
		}
		return nil
	})
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	accessToken, genErr := as.generateAccessToken(user)
	if genErr != nil {
		return "", "", fmt.Errorf("generate access token error: %w", genErr)
	}
	refreshToken := uuid.New().String()
	userToken := types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
		as.log.Warn("Create user token error", "error", ctErr)
		return "", "", fmt.Errorf("create user token error: %w", ctErr)
	}
	return accessToken, refreshToken, nil
}

// issueOTP replaces any outstanding code of the same purpose, stores the
// bcrypt hash of a fresh one and hands the plain code to the mailer.
func (as *authService) issueOTP(ctx context.Context, user *types.User, purpose types.OTPPurpose) error {
	code, cErr := generateOTPCode()
	if cErr != nil {
		return fmt.Errorf("failed to generate code: %w", cErr)
	}
	hash, hErr := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if hErr != nil {
		return fmt.Errorf("failed to hash code: %w", hErr)
	}

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := as.userOTPRepo.DeleteByUserAndPurpose(ctx, tx, user.ID, purpose); dErr != nil {
			return fmt.Errorf("failed to clear outstanding codes: %w", dErr)
		}
		otp := types.UserOTP{
			ID:        uuid.New(),
			UserID:    user.ID,
			Email:     user.Email,
			CodeHash:  string(hash),
			Purpose:   purpose,
			ExpiresAt: time.Now().Add(otpTTL),
		}
		if _, cErr := as.userOTPRepo.Create(ctx, tx, []*types.UserOTP{&otp}); cErr != nil {
			return fmt.Errorf("failed to store code: %w", cErr)
		}
		return nil
	}); err != nil {
		return err
	}
	return as.mailer.SendOTP(ctx, user.Email, user.Name, code, purpose)
}

// redeemOTP checks the code against the newest active row and consumes it.
// Every failure mode maps to the same Unauthorized error.
func (as *authService) redeemOTP(ctx context.Context, tx *gorm.DB, email, code string, purpose types.OTPPurpose) (*types.User, error) {
	invalid := apierr.Unauthorized(fmt.Errorf("invalid or expired code"))

	user, uErr := as.userRepo.GetByEmail(ctx, tx, email)
	if uErr != nil {
		if errors.Is(uErr, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", uErr)
	}
	otp, oErr := as.userOTPRepo.GetActive(ctx, tx, email, purpose)
	if oErr != nil {
		if errors.Is(oErr, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("error retrieving code: %w", oErr)
	}
	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		return nil, invalid
	}
	if cErr := as.userOTPRepo.Consume(ctx, tx, otp.ID); cErr != nil {
		return nil, fmt.Errorf("failed to consume code: %w", cErr)
	}
	return user, nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("failed to parse token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid user id in token: %w", err))
	}

	var refreshToken string
	foundToken, ftErr := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if ftErr != nil {
		if !errors.Is(ftErr, gorm.ErrRecordNotFound) {
			return ctx, fmt.Errorf("failed to fetch user token by access token: %w", ftErr)
		}
		return ctx, apierr.Unauthorized(fmt.Errorf("token has been revoked"))
	}
	refreshToken = foundToken.RefreshToken

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
