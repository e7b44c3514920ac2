// Package dashboard provides an embeddable SpaceX launch records dashboard.
//
// The dashboard serves a single page with a launch site selector, a payload
// range selector and two charts: the share of successful launches and the
// payload mass versus outcome scatter. It can be run through the launchdash
// CLI or embedded as a library in other Go programs.
//
// # Basic Usage
//
//	cfg := dashboard.Config{
//	    DatasetPath: "spacex_launch_dash.csv",
//	    ListenAddr:  "127.0.0.1:8050",
//	}
//
//	d, err := dashboard.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := d.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("serving on", d.Addr())
//
//	// ... run until shutdown signal ...
//
//	if err := d.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Configuration
//
// A [Config] needs a DatasetPath unless a loader is supplied with
// [WithDatasetLoader]. All other fields have defaults set via
// [Config.SetDefaults].
//
// # Event Handling
//
// Implement [EventHandler] and pass it via [WithEventHandler] to observe
// lifecycle transitions and every chart recomputation. Embed
// [BaseEventHandler] to implement only the callbacks you need. Callbacks are
// invoked synchronously and should return quickly.
//
// # Lifecycle States
//
// A Dashboard is in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use [Dashboard.Status]
// to query the current state and [Dashboard.Done] to wait for the server to
// exit.
//
// # Plugins
//
// Plugins registered with [WithPlugin] are initialized in registration order
// when the dashboard starts and shut down in reverse order when it stops.
//
//	import "github.com/bft-labs/launchdash/plugins/configwatcher"
//
//	d, err := dashboard.New(cfg, configwatcher.WithDefaultConfigWatcher())
package dashboard
