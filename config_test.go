package main

import (
	"os"
	"testing"
)

func Test_onlySomeEnvsSet(t *testing.T) {
	t.Run("false when no envs passed in", func(t *testing.T) {
		actual := onlySomeEnvsSet()
		expected := false
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
	})
	t.Run("true when only some of the envs are set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		actual := onlySomeEnvsSet("valueOne", "valueTwo")
		expected := true
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
	})
	t.Run("false when all envs are set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		os.Setenv("valueTwo", "two")
		actual := onlySomeEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
		os.Unsetenv("valueTwo")
	})
	t.Run("false when none of the envs are set", func(t *testing.T) {
		actual := onlySomeEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("onlySomeEnvsSet() = %v, expected %v", actual, expected)
		}
	})
}

func Test_getEnv(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		actual := getEnv("valueOne", "fallback")
		expected := "fallback"
		if expected != actual {
			t.Errorf("getEnv() = %v, expected %v", actual, expected)
		}
	})
	t.Run("value when set, even if empty", func(t *testing.T) {
		os.Setenv("valueOne", "")
		actual := getEnv("valueOne", "fallback")
		expected := ""
		if expected != actual {
			t.Errorf("getEnv() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
	})
}

func Test_loadConfig(t *testing.T) {
	t.Run("rejects a partial DB configuration", func(t *testing.T) {
		os.Setenv("DB_ADDR", "db:5432")
		_, err := loadConfig()
		if err == nil {
			t.Errorf("loadConfig() error = nil, expected an error")
		}
		os.Unsetenv("DB_ADDR")
	})
	t.Run("rejects a missing JWT secret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		_, err := loadConfig()
		if err == nil {
			t.Errorf("loadConfig() error = nil, expected an error")
		}
		os.Setenv("JWT_SECRET", "")
		_, err = loadConfig()
		if err == nil {
			t.Errorf("loadConfig() error = nil, expected an error")
		}
		os.Unsetenv("JWT_SECRET")
	})
	t.Run("defaults when only the JWT secret is set", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "secret")
		defer os.Unsetenv("JWT_SECRET")
		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Port != "4000" {
			t.Errorf("loadConfig().Port = %v, expected %v", cfg.Port, "4000")
		}
		if cfg.DB.Database != "todos" {
			t.Errorf("loadConfig().DB.Database = %v, expected %v", cfg.DB.Database, "todos")
		}
		if cfg.JWTSecret != "secret" {
			t.Errorf("loadConfig().JWTSecret = %v, expected %v", cfg.JWTSecret, "secret")
		}
	})
}

func Test_noEnvsSet(t *testing.T) {
	t.Run("true when none of the envs are set", func(t *testing.T) {
		actual := noEnvsSet("valueOne", "valueTwo")
		expected := true
		if expected != actual {
			t.Errorf("noEnvsSet() = %v, expected %v", actual, expected)
		}
	})
	t.Run("false when some of the envs set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		actual := noEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("noEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
	})
	t.Run("false when all of the envs set", func(t *testing.T) {
		os.Setenv("valueOne", "one")
		os.Setenv("valueTwo", "two")
		actual := noEnvsSet("valueOne", "valueTwo")
		expected := false
		if expected != actual {
			t.Errorf("noEnvsSet() = %v, expected %v", actual, expected)
		}
		os.Unsetenv("valueOne")
		os.Unsetenv("valueTwo")
	})
}
