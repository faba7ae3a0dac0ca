// Command server runs the omnifs daemon: server [config_path] [volume_path].
// Defaults: compiled/default.uconf, omni_fs.omni.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abdulbasit24075/omnifs/internal/adminhttp"
	"github.com/Abdulbasit24075/omnifs/internal/config"
	"github.com/Abdulbasit24075/omnifs/internal/logger"
	"github.com/Abdulbasit24075/omnifs/internal/ofs"
	"github.com/Abdulbasit24075/omnifs/internal/pipeline"
)

const (
	defaultConfigPath = "compiled/default.uconf"
	defaultVolumePath = "omni_fs.omni"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config %s: %v\n", configPath, err)
		return 1
	}
	logger.SetLevel(cfg.LogLevel)

	// The volume_path positional argument always wins over both the
	// config file's volume_path key and the built-in default.
	if len(os.Args) > 2 {
		cfg.VolumePath = os.Args[2]
	} else if cfg.VolumePath == "" {
		cfg.VolumePath = defaultVolumePath
	}

	srv, err := openOrFormat(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init volume %s: %v\n", cfg.VolumePath, err)
		return 1
	}
	defer srv.Close()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "listen on port %d: %v\n", cfg.Port, err)
		return 1
	}

	pipe := pipeline.New(ln, srv)
	pipe.Start()
	logger.Info("omnifs listening on port %d, volume %s", cfg.Port, cfg.VolumePath)

	var adminSrv *adminhttp.Server
	if cfg.AdminHTTPAddr != "" {
		adminSrv = adminhttp.New(cfg.AdminHTTPAddr, func() adminhttp.Stats {
			total, used, free, users, files, dirs := srv.Snapshot()
			return adminhttp.Stats{
				TotalSize: total,
				UsedSpace: used,
				FreeSpace: free,
				UserCount: users,
				FileCount: files,
				DirCount:  dirs,
			}
		})
		adminSrv.Start()
		logger.Info("admin status page listening on %s", cfg.AdminHTTPAddr)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if adminSrv != nil {
		adminSrv.Close()
	}
	pipe.Stop()
	logger.Info("shutdown complete")
	return 0
}

// openOrFormat loads an existing volume at cfg.VolumePath, or formats
// a fresh one if none exists yet.
func openOrFormat(cfg *config.Config) (*ofs.Server, error) {
	if _, err := os.Stat(cfg.VolumePath); err == nil {
		return ofs.Load(cfg.VolumePath)
	}
	return ofs.Format(cfg.VolumePath, cfg.TotalSize, cfg.BlockSize, cfg.MaxUsers)
}
