// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"context"
	"io"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/raiden-deploy/pkg/config"
	"github.com/luxfi/raiden-deploy/pkg/contract"
	"github.com/luxfi/raiden-deploy/pkg/deployinfo"
	"github.com/luxfi/raiden-deploy/pkg/manifest"
	"github.com/luxfi/raiden-deploy/pkg/prompts"
	"github.com/luxfi/raiden-deploy/pkg/session"
	"github.com/spf13/afero"
)

// Settings are the shared options of the command being run.
type Settings struct {
	Session       session.Inputs
	ContractsDir  string
	DeploymentDir string
	ReportFormat  string
}

// App is the state of one invocation. The session it creates is reused by
// every command of the chain.
type App struct {
	Log      luxlog.Logger
	baseDir  string
	Conf     *config.Config
	Prompt   prompts.Prompter
	Fs       afero.Fs
	Backend  session.Backend
	Out      io.Writer
	Settings Settings

	session    *session.Session
	readClient contract.Client
	manifests  map[string]*manifest.Manifest
}

func New() *App {
	return &App{manifests: map[string]*manifest.Manifest{}}
}

func (app *App) Setup(
	baseDir string,
	log luxlog.Logger,
	conf *config.Config,
	prompt prompts.Prompter,
	fs afero.Fs,
	backend session.Backend,
	out io.Writer,
) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.Fs = fs
	app.Backend = backend
	app.Out = out
}

func (app *App) GetBaseDir() string {
	return app.baseDir
}

// Manifest loads the manifest the current settings select, once per version.
func (app *App) Manifest() (*manifest.Manifest, error) {
	key := ""
	if v := app.Settings.Session.ContractsVersion; v != nil {
		key = *v
	}
	cacheKey := app.Settings.ContractsDir + "@" + key
	if m, ok := app.manifests[cacheKey]; ok {
		return m, nil
	}
	m, err := manifest.NewSource(app.Fs, app.Settings.ContractsDir).Load(app.Settings.Session.ContractsVersion)
	if err != nil {
		return nil, err
	}
	app.manifests[cacheKey] = m
	return m, nil
}

// Session returns the deployment session, creating it on first use. Later
// commands must run with the same shared options.
func (app *App) Session(ctx context.Context) (*session.Session, error) {
	if app.session != nil {
		if err := app.session.CheckInputs(app.Settings.Session); err != nil {
			return nil, err
		}
		return app.session, nil
	}
	m, err := app.Manifest()
	if err != nil {
		return nil, err
	}
	s, err := session.Setup(ctx, app.Backend, m, app.Settings.Session, app.Log)
	if err != nil {
		return nil, err
	}
	app.session = s
	return s, nil
}

// ReadClient reuses the session connection when there is one.
func (app *App) ReadClient(ctx context.Context) (contract.Client, error) {
	if app.session != nil {
		if err := app.session.CheckInputs(app.Settings.Session); err != nil {
			return nil, err
		}
		return app.session.Client, nil
	}
	if app.readClient != nil {
		return app.readClient, nil
	}
	client, err := app.Backend.Dial(ctx, app.Settings.Session.RPCProvider)
	if err != nil {
		return nil, err
	}
	app.readClient = client
	return client, nil
}

func (app *App) Store() *deployinfo.Store {
	return deployinfo.NewStore(app.Fs, app.Settings.DeploymentDir)
}

func (app *App) Logger() luxlog.Logger {
	return app.Log
}

// Close releases the ledger connections.
func (app *App) Close() {
	if app.session != nil {
		app.session.Close()
		app.session = nil
	}
	if app.readClient != nil {
		app.readClient.Close()
		app.readClient = nil
	}
}
