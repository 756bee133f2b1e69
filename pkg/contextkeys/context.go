package contextkeys

// Custom type to avoid collisions with other packages' context keys.
type contextKey string

// DBContextKey stores the *gorm.DB (pool or transaction) for the current request.
const DBContextKey = contextKey("db")

// Keys set by AuthMiddleware on the gin context.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)
