// A minimal build-tool hook: compiles every .vue file passed on the command
// line and writes the resulting module next to it with a .js suffix.
package main

import (
	"log/slog"
	"os"

	"github.com/vuecc/vuecc"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cc := &vuecc.Compiler{Logger: logger}

	for _, path := range os.Args[1:] {
		src, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "path", path, "error", err)
			os.Exit(1)
		}

		res, err := cc.Transform(string(src), path)
		if err != nil {
			logger.Error("compile failed", "path", path, "error", err)
			if ctx := vuecc.Diagnose(string(src), err, 2); ctx != nil {
				for _, ln := range ctx.Lines {
					logger.Error("source", "line", ln.Number, "text", ln.Text, "fault", ln.IsError)
				}
			}
			os.Exit(1)
		}
		if res == nil {
			logger.Warn("not a vue file, skipping", "path", path)
			continue
		}

		out := path + ".js"
		if err := os.WriteFile(out, []byte(res.Code), 0o644); err != nil {
			logger.Error("write failed", "path", out, "error", err)
			os.Exit(1)
		}
		logger.Info("compiled", "path", path, "out", out, "bytes", len(res.Code))
	}
}
