package config

import "github.com/caarlos0/env/v11"

type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	MongoURI       string `env:"MONGO_URI"`
	MongoDB        string `env:"MONGO_DB" envDefault:"chat"`
	JWTSecret      string `env:"JWT_SECRET"`
	AuthCookieName string `env:"AUTH_COOKIE_NAME" envDefault:"jwt"`
	// FrontendURL is the origin allowed for CORS and the websocket handshake.
	FrontendURL  string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}
