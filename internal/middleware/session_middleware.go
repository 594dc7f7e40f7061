package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CartIDKey is the gin context key for the session's cart id
const CartIDKey = "cart_id"

type sessionClaims struct {
	CartID string `json:"cart_id"`
	jwt.RegisteredClaims
}

// SessionMiddleware identifies the guest cart behind each request. The
// cart id travels in a signed cookie; anything missing, tampered or
// expired silently mints a fresh cart instead of failing the request.
type SessionMiddleware struct {
	secret     string
	cookieName string
	ttl        time.Duration
}

func NewSessionMiddleware(secret, cookieName string, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		secret:     secret,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

// Attach resolves the cart id for the request and stores it in context,
// issuing a new session cookie when needed.
func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		cartID := ""
		if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
			cartID, err = m.parseToken(token)
			if err != nil {
				log.Debug("Invalid session token, issuing a new cart", map[string]interface{}{
					"error": err.Error(),
				})
				cartID = ""
			}
		}

		if cartID == "" {
			cartID = uuid.NewString()
			token, err := m.signToken(cartID)
			if err != nil {
				log.Error("Failed to sign session token", err, nil)
			} else {
				c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
			}
			log.Debug("New cart session issued", map[string]interface{}{
				"cart_id": cartID,
			})
		}

		c.Set(CartIDKey, cartID)
		c.Next()
	}
}

func (m *SessionMiddleware) signToken(cartID string) (string, error) {
	claims := sessionClaims{
		CartID: cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
}

func (m *SessionMiddleware) parseToken(token string) (string, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.CartID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.CartID, nil
}

// GetCartID retrieves the session cart id from gin context
func GetCartID(c *gin.Context) (string, bool) {
	cartID := c.GetString(CartIDKey)
	return cartID, cartID != ""
}
