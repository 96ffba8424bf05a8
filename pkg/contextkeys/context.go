package contextkeys

// Custom type so the key cannot collide with other context values.
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB is stored.
const DBContextKey = contextKey("db")
