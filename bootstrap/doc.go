// Package bootstrap orchestrates application lifecycle for streamkit
// services.
//
// It loads typed configuration, initializes the logger, starts registered
// components in order, and handles graceful shutdown on OS signals.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(sseComponent)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
