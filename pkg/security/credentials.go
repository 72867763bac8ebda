package security

import (
	"context"
	"crypto/subtle"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/config"
	"VideoTube.com/pkg/errno"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserTokenStore persistence the credential manager needs
type UserTokenStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	// SetRefreshToken stores the single active refresh token, "" clears it
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
}

// AccessClaims 访问令牌声明
type AccessClaims struct {
	UserID   string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims 刷新令牌只携带用户ID
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"-"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}

// CredentialManager issues, rotates, revokes and verifies the access/refresh token pair.
// Rotation is not synchronized: two concurrent refreshes with the same token may both
// succeed and the last persisted token wins.
type CredentialManager struct {
	store         UserTokenStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewCredentialManager(store UserTokenStore, c config.Auth) *CredentialManager {
	return &CredentialManager{
		store:         store,
		accessSecret:  []byte(c.AccessTokenSecret),
		refreshSecret: []byte(c.RefreshTokenSecret),
		accessTTL:     c.AccessTokenTTL,
		refreshTTL:    c.RefreshTokenTTL,
		issuer:        c.Issuer,
		now:           time.Now,
	}
}

var (
	errMissingToken   = errno.UnauthorizedErr.WithMessage("Unauthorized request")
	errInvalidAccess  = errno.UnauthorizedErr.WithMessage("Invalid access token")
	errInvalidRefresh = errno.UnauthorizedErr.WithMessage("Invalid refresh token")
	errRefreshReused  = errno.UnauthorizedErr.WithMessage("Refresh token is expired or used")
)

// Issue signs a new pair for the user and persists the refresh token, replacing any previous one
func (m *CredentialManager) Issue(ctx context.Context, userID primitive.ObjectID) (*TokenPair, error) {
	user, err := m.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load user for token issue failed")
	}
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("User does not exist")
	}
	return m.issueFor(ctx, user)
}

func (m *CredentialManager) issueFor(ctx context.Context, user *model.User) (*TokenPair, error) {
	now := m.now()
	pair := &TokenPair{
		AccessTokenExpiresAt:  now.Add(m.accessTTL),
		RefreshTokenExpiresAt: now.Add(m.refreshTTL),
	}

	var err error
	pair.AccessToken, err = m.sign(&AccessClaims{
		UserID:           user.ID.Hex(),
		Username:         user.Username,
		Email:            user.Email,
		FullName:         user.FullName,
		RegisteredClaims: m.registered(user.ID, now, pair.AccessTokenExpiresAt),
	}, m.accessSecret)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token failed")
	}
	pair.RefreshToken, err = m.sign(&RefreshClaims{
		UserID:           user.ID.Hex(),
		RegisteredClaims: m.registered(user.ID, now, pair.RefreshTokenExpiresAt),
	}, m.refreshSecret)
	if err != nil {
		return nil, errors.Wrap(err, "sign refresh token failed")
	}

	if err := m.store.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "persist refresh token failed")
	}
	return pair, nil
}

// Refresh exchanges a valid, current refresh token for a new pair. A token that
// verifies but differs from the persisted one has been rotated away or revoked.
func (m *CredentialManager) Refresh(ctx context.Context, token string) (*TokenPair, *model.User, error) {
	if token == "" {
		return nil, nil, errMissingToken
	}
	claims := &RefreshClaims{}
	if err := m.parse(token, claims, m.refreshSecret); err != nil {
		return nil, nil, errInvalidRefresh
	}
	user, err := m.loadClaimedUser(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, errInvalidRefresh
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(user.RefreshToken)) != 1 {
		return nil, nil, errRefreshReused
	}

	pair, err := m.issueFor(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Revoke clears the persisted refresh token. Outstanding access tokens stay valid until they expire.
func (m *CredentialManager) Revoke(ctx context.Context, userID primitive.ObjectID) error {
	if err := m.store.SetRefreshToken(ctx, userID, ""); err != nil {
		return errors.Wrap(err, "clear refresh token failed")
	}
	return nil
}

// Authenticate verifies an access token and loads its user
func (m *CredentialManager) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, errMissingToken
	}
	claims := &AccessClaims{}
	if err := m.parse(token, claims, m.accessSecret); err != nil {
		return nil, errInvalidAccess
	}
	user, err := m.loadClaimedUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidAccess
	}
	return user, nil
}

func (m *CredentialManager) loadClaimedUser(ctx context.Context, rawID string) (*model.User, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, errMissingToken.WithMessage("Malformed token subject")
	}
	user, err := m.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load token user failed")
	}
	return user, nil
}

func (m *CredentialManager) registered(userID primitive.ObjectID, now, expires time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		// 唯一的JTI，同一秒内签发的令牌也不会相同
		ID:        uuid.NewString(),
		Issuer:    m.issuer,
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
}

func (m *CredentialManager) sign(claims jwt.Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *CredentialManager) parse(token string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	return err
}
