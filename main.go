package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/folio-cc/folio/cache"
	conf "github.com/folio-cc/folio/config"
	"github.com/folio-cc/folio/server"
)

func main() {

	// Parse flags, which also inits glog
	flag.Parse()

	// 100 megabytes max before rolling the log files
	glog.MaxSize = 1024 * 1024 * 100

	// Catch closing signal and flush logs
	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	go func() {
		<-sigc
		glog.Flush()
		os.Exit(1)
	}()

	// Read the config file, then it's our responsibility to set up memcache
	// before we start the server
	conf.MustLoad()

	if glog.V(2) {
		glog.Infof(
			"Initialising cache connection to %s:%d",
			conf.ConfigStrings[conf.MemcachedHost],
			conf.ConfigInt64s[conf.MemcachedPort],
		)
	}
	cache.InitCache(
		conf.ConfigStrings[conf.MemcachedHost],
		conf.ConfigInt64s[conf.MemcachedPort],
	)

	if glog.V(2) {
		glog.Infof(
			"Starting server on port %d",
			conf.ConfigInt64s[conf.ListenPort],
		)
	}
	server.StartServer(conf.ConfigInt64s[conf.ListenPort])
}
