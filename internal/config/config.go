/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config loads the server's key=value configuration file (spec §6)
// through github.com/spf13/viper in its properties mode, with every key's
// default registered up front the way the teacher's config/components
// default.go files do.
package config

import (
	"fmt"
	"strings"

	libval "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sabouaram/golib/internal/srverr"
)

// Config is the resolved, typed view over the configuration file.
type Config struct {
	RingQueueLength int
	WorkerNum       int
	BindFile        string
	RecvBuffer      int
	SendBuffer      int
	MaxPacketSize   int `validate:"gt=0,lte=65507"`
	RunMode         string
	LogDir          string
	LogLevel        string
	LogMaxFiles     int
	LogSize         int64
	LogDest         string
}

// Validate checks every struct constraint, grounded on the teacher's
// logger/config Options.Validate() pattern: spec §6 requires max_packet_size
// to not exceed the system max, enforced here via validator/v10 against
// MaxSystemPacketSize rather than a hand-rolled bound check.
func (c *Config) Validate() error {
	err := libval.New().Struct(c)
	if err == nil {
		return nil
	}

	if er, ok := err.(*libval.InvalidValidationError); ok {
		return srverr.ErrorConfigInvalid.Error(er)
	}

	var parents []error
	for _, er := range err.(libval.ValidationErrors) {
		parents = append(parents, fmt.Errorf("config field '%s' is not validated by constraint '%s'", er.Namespace(), er.ActualTag()))
	}
	return srverr.ErrorConfigInvalid.Error(parents...)
}

// Load reads path (a line-oriented key=value file) and returns the typed
// Config, falling back to the documented default for any key not present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{
		RingQueueLength: v.GetInt(KeyRingQueueLength),
		WorkerNum:       v.GetInt(KeyWorkerNum),
		BindFile:        v.GetString(KeyBindFile),
		RecvBuffer:      v.GetInt(KeyRecvBuffer),
		SendBuffer:      v.GetInt(KeySendBuffer),
		MaxPacketSize:   v.GetInt(KeyMaxPacketSize),
		RunMode:         strings.ToLower(v.GetString(KeyRunMode)),
		LogDir:          v.GetString(KeyLogDir),
		LogLevel:        v.GetString(KeyLogLevel),
		LogMaxFiles:     v.GetInt(KeyLogMaxFiles),
		LogSize:         v.GetInt64(KeyLogSize),
		LogDest:         v.GetString(KeyLogDest),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
