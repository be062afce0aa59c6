package main

import (
	"errors"
	"fmt"

	"github.com/target/boxoffice/internal/bootstrap"
)

var errNotLoggedIn = errors.New("not logged in; run boxoffice-admin login first")

// cliEnv is the storage and service graph a command runs against.
type cliEnv struct {
	storage  bootstrap.Storage
	services bootstrap.ServiceContainer
}

func (e *cliEnv) Close() error {
	var storageErr error
	if e.storage.Close != nil {
		storageErr = e.storage.Close()
	}
	return errors.Join(storageErr, e.services.Close())
}

// connectEnv opens the configured session storage and wires the services over it.
func connectEnv(cmdCtx *commandContext) (*cliEnv, error) {
	storage, err := bootstrap.BuildStorage(cmdCtx.Ctx, bootstrap.StorageConfig{
		Storage:  cmdCtx.Config.Storage,
		Postgres: cmdCtx.Config.Postgres,
		Redis:    cmdCtx.Config.Redis,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	services, err := bootstrap.BuildServices(bootstrap.ServiceDeps{
		Config: &cmdCtx.Config,
		KV:     storage.KV,
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return nil, errors.Join(err, storage.Close())
	}
	return &cliEnv{storage: storage, services: services}, nil
}

// withEnv runs fn against a connected environment and closes it afterwards.
func withEnv(cmdCtx *commandContext, fn func(env *cliEnv) error) (err error) {
	env, err := connectEnv(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil {
			cmdCtx.Logger.Warn("storage close failed", "error", cerr)
		}
	}()
	return fn(env)
}

// requireToken returns the bearer token stored for scope.
func requireToken(cmdCtx *commandContext, env *cliEnv, scope string) (string, error) {
	tok := env.services.Auth.Token(cmdCtx.Ctx, scope)
	if tok == "" {
		return "", errNotLoggedIn
	}
	return tok, nil
}
