// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command token mints a signed access token for an operator.
//
//	token --operator alice --role editor --ttl 12h
//
// Key paths come from JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/pborman/getopt"

	"github.com/taibuivan/netinv/internal/platform/constants"
	"github.com/taibuivan/netinv/internal/platform/sec"
)

type keyConfig struct {
	PrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	PublicKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
}

var roles = []sec.UserRole{sec.RoleViewer, sec.RoleEditor, sec.RoleAdmin}

func main() {
	operator := getopt.StringLong("operator", 'o', "", "operator name recorded on writes", "name")
	role := getopt.StringLong("role", 'r', string(sec.RoleViewer), "viewer, editor or admin", "role")
	ttl := getopt.DurationLong("ttl", 't', constants.DefaultTokenTTL, "token lifetime", "duration")
	help := getopt.BoolLong("help", 'h', "show usage")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *operator == "" {
		log.Error("operator is required")
		getopt.Usage()
		os.Exit(2)
	}
	if !slices.Contains(roles, sec.UserRole(*role)) {
		log.Error("unknown role", slog.String("role", *role))
		os.Exit(2)
	}

	var keys keyConfig
	if err := env.Parse(&keys); err != nil {
		log.Error("load key paths", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := sec.NewTokenService(keys.PrivateKeyPath, keys.PublicKeyPath, constants.AuthIssuer)
	if err != nil {
		log.Error("initialize token service", slog.Any("error", err))
		os.Exit(1)
	}

	token, err := tokens.GenerateAccessToken(*operator, sec.UserRole(*role), *ttl)
	if err != nil {
		log.Error("sign token", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(token)
}
