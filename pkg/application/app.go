// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"path/filepath"

	luxlog "github.com/luxfi/log"
	"github.com/luxfi/xtoken-deploy/pkg/config"
	"github.com/luxfi/xtoken-deploy/pkg/constants"
	"github.com/luxfi/xtoken-deploy/pkg/ux"
	"github.com/spf13/afero"
)

type App struct {
	Log     luxlog.Logger
	Out     *ux.UserLog
	Conf    *config.Config
	FS      afero.Fs
	RunID   string
	baseDir string
	closers []func() error
}

func New() *App {
	return &App{
		Log: luxlog.Noop(),
		FS:  afero.NewOsFs(),
	}
}

func (app *App) Setup(baseDir string, runID string, log luxlog.Logger, out *ux.UserLog, conf *config.Config) {
	app.baseDir = baseDir
	app.RunID = runID
	app.Log = log
	app.Out = out
	app.Conf = conf
}

func (app *App) GetBaseDir() string {
	return app.baseDir
}

func (app *App) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *App) GetLogFile() string {
	return filepath.Join(app.GetLogDir(), constants.LogFileName)
}

// OnClose registers [fn] to run when the app is closed, in reverse order
func (app *App) OnClose(fn func() error) {
	app.closers = append(app.closers, fn)
}

// Close releases everything registered with OnClose
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i]()
	}
	app.closers = nil
}
