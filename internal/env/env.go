package env

import (
	"os"
)

const (
	ServerURL = "SERVER_URL"
	BrokerURL = "BROKER_URL"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultBrokerURL = "ws://localhost:8080/ws"
)

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}

// Server returns the base URL of the REST backend.
func Server() string {
	return GetOrDefault(ServerURL, defaultServerURL)
}

// Broker returns the websocket URL of the message broker.
func Broker() string {
	return GetOrDefault(BrokerURL, defaultBrokerURL)
}
