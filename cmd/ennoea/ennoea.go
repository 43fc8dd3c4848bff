// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ennoea serves the 3D architecture viewer and its save API,
// and checks and inspects architecture documents.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/notify"
	"cogentcore.org/ennoea/server"
	"cogentcore.org/ennoea/session"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

//go:generate core generate -add-types -add-funcs

// Config is the configuration information for the ennoea cli.
type Config struct {

	// File is the architecture document to validate, show or create.
	// For serve, it is loaded into the live session when given.
	File string `posarg:"0" required:"-"`

	// Port is the port to serve on.
	Port int `cmd:"serve" default:"8080"`

	// StaticDir is the directory of the web client served at the root.
	StaticDir string `cmd:"serve" default:"build/static"`

	// Backend is where saved architectures are stored:
	// fs, sqlite, postgres, s3 or memory.
	Backend string `cmd:"serve" default:"fs"`

	// SaveDir is the directory of the fs backend.
	SaveDir string `cmd:"serve" default:"saves"`

	// SQLite is the database file of the sqlite backend.
	SQLite string `cmd:"serve" default:"ennoea.db"`

	// Postgres is the connection string of the postgres backend.
	Postgres string `cmd:"serve" default:"postgres://localhost/ennoea?sslmode=disable"`

	// S3Bucket is the bucket of the s3 backend.
	S3Bucket string `cmd:"serve"`

	// S3Prefix is prepended to the object keys of the s3 backend.
	S3Prefix string `cmd:"serve"`

	// S3Region is the region of the s3 backend.
	S3Region string `cmd:"serve" default:"us-east-1"`

	// S3Endpoint is a custom endpoint of the s3 backend, such as a MinIO server.
	S3Endpoint string `cmd:"serve"`

	// Watch reloads File into the live session whenever it changes.
	Watch bool `cmd:"serve" flag:"w,watch"`

	// Live also sets saved architectures as the document of the live session.
	Live bool `cmd:"serve" default:"true"`

	// Origins are the allowed CORS origins. All origins are allowed if empty.
	Origins []string `cmd:"serve"`

	// Name is the name of a new document. It defaults to the file name.
	Name string `cmd:"new"`

	// Description is the description of a new document.
	Description string `cmd:"new" default:"A new architecture."`

	// Force overwrites an existing file with new.
	Force bool `cmd:"new" flag:"f,force"`

	// Debug enables debug logging.
	Debug bool `flag:"d,debug"`
}

func main() { //types:skip
	opts := cli.DefaultOptions("ennoea", "Ennoea serves and inspects 3D architecture diagrams.")
	opts.DefaultFiles = []string{"ennoea.toml"}
	cli.Run(opts, &Config{}, Serve, Validate, Show, New)
}

func setLogLevel(c *Config) {
	if c.Debug {
		logx.UserLevel = slog.LevelDebug
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}

// Serve runs the server with the live session until it is interrupted.
// If a file is given, it is loaded into the session, and with watch it
// is reloaded every time it changes.
func Serve(c *Config) error { //cli:cmd -root
	setLogLevel(c)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, c)
	if err != nil {
		return err
	}
	defer func() { errors.Log(backend.Close()) }()

	sess := session.New(session.Options{Notify: notify.NewConsole(nil)})
	srv := server.New(server.Config{
		Addr:           fmt.Sprintf(":%d", c.Port),
		StaticDir:      staticDir(c.StaticDir),
		Live:           c.Live,
		AllowedOrigins: c.Origins,
	}, backend, sess)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sess.Run(ctx) })
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	if c.File != "" {
		if c.Watch {
			g.Go(func() error { return sess.Watch(ctx, c.File) })
		} else {
			// a bad file is notified and the server keeps running
			g.Go(func() error {
				errors.Log(sess.Do(ctx, func() { sess.LoadFile(c.File) }))
				return nil
			})
		}
	}
	return g.Wait()
}

// staticDir returns the directory if it exists, and otherwise
// logs that no web client is served.
func staticDir(dir string) string {
	if dir == "" {
		return ""
	}
	if !isDir(dir) {
		slog.Warn("static directory not found, not serving the web client", "dir", dir)
		return ""
	}
	return dir
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Validate checks the given document, printing every problem
// and every reference that does not resolve.
func Validate(c *Config) error {
	setLogLevel(c)
	return validate(c, os.Stdout)
}

func validate(c *Config, w io.Writer) error {
	if c.File == "" {
		return errors.New("validate: file required")
	}
	doc, err := arch.Open(c.File)
	if err != nil {
		return err
	}
	for _, m := range doc.Warnings() {
		fmt.Fprintf(w, "%s: warning: %s\n", c.File, m)
	}
	if err := doc.Validate(); err != nil {
		lines := strings.Split(err.Error(), "\n")
		for _, line := range lines {
			fmt.Fprintf(w, "%s: %s\n", c.File, line)
		}
		return fmt.Errorf("%s: %d problems", c.File, len(lines))
	}
	fmt.Fprintf(w, "%s: valid (%d components, %d connections, %d groups)\n",
		c.File, len(doc.Components), len(doc.Connections), len(doc.Groups))
	return nil
}

// Show builds the scene of the given document without a display and
// prints a summary of it followed by the normalized document.
func Show(c *Config) error {
	setLogLevel(c)
	return show(c, os.Stdout)
}

func show(c *Config, w io.Writer) error {
	if c.File == "" {
		return errors.New("show: file required")
	}
	rec := &notify.Recorder{}
	sess := session.New(session.Options{Notify: rec})
	if err := sess.LoadFile(c.File); err != nil {
		return err
	}
	doc := sess.Document()
	si := sess.SceneInfo()

	fmt.Fprintf(w, "%s (version %s)\n", doc.Info.Name, doc.Info.Version)
	if doc.Info.Description != "" {
		fmt.Fprintf(w, "  %s\n", doc.Info.Description)
	}
	fmt.Fprintf(w, "components %d, connections %d, groups %d\n",
		len(doc.Components), len(doc.Connections), len(doc.Groups))
	fmt.Fprintf(w, "scene: %d objects (%d pickable), %d lines, %d boxes, %d labels, %d pulses\n",
		si.Objects, si.Pickable, si.Lines, si.Boxes, si.Labels, si.Pulses)
	fmt.Fprintf(w, "camera %v looking at %v\n", si.Camera, si.LookAt)
	for _, m := range rec.Messages(notify.Alert) {
		fmt.Fprintf(w, "warning: %s\n", m)
	}
	fmt.Fprintln(w)

	b, err := doc.Encode()
	if err != nil {
		return err
	}
	return highlight(w, string(b))
}

// highlight writes the JSON source with terminal colors
// when the writer supports them.
func highlight(w io.Writer, src string) error {
	if termenv.NewOutput(w).Profile == termenv.Ascii {
		_, err := fmt.Fprintln(w, src)
		return err
	}
	if err := quick.Highlight(w, src, "json", "terminal256", "monokai"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// New writes a new document with the default scene settings
// to the given file.
func New(c *Config) error {
	setLogLevel(c)
	if c.File == "" {
		return errors.New("new: file required")
	}
	path := c.File
	if isDir(path) {
		path = filepath.Join(path, session.DefaultFilename)
	}
	if !c.Force && errors.Log1(fsx.FileExists(path)) {
		return fmt.Errorf("%s already exists; use -force to overwrite it", path)
	}
	name := c.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	doc := arch.New(name, c.Description)
	if err := doc.Save(path); err != nil {
		return err
	}
	logx.PrintlnInfo("created", path)
	return nil
}
