// Command setupdocs scaffolds an MkDocs documentation project.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/scaffold"
	"git.home.luguber.info/inful/docaggregator/internal/version"
)

// CLI is the setupdocs command line.
type CLI struct {
	ProjectName string           `name:"project-name" help:"Project name." required:""`
	Type        string           `help:"Documentation type: individual for one project, central for many." enum:"individual,central" default:"individual"`
	Path        string           `help:"Where to create the documentation." default:"." type:"path"`
	Theme       string           `help:"MkDocs theme (readthedocs|material|gitbook)." enum:"readthedocs,material,gitbook" default:"readthedocs"`
	Verbose     bool             `short:"v" help:"Enable verbose logging."`
	Version     kong.VersionFlag `help:"Show version and exit."`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Run generates the scaffold and prints a summary to out.
func (c *CLI) Run(out io.Writer) error {
	typ, err := scaffold.ParseType(c.Type)
	if err != nil {
		return derrors.ValidationError("invalid --type").WithCause(err).Build()
	}
	theme, err := scaffold.ParseTheme(c.Theme)
	if err != nil {
		return derrors.ValidationError("invalid --theme").WithCause(err).Build()
	}

	_, _ = fmt.Fprintf(out, "\n🚀 Configurando documentación para: %s\n", c.ProjectName)
	_, _ = fmt.Fprintf(out, "📁 Tipo: %s\n", typ)
	_, _ = fmt.Fprintf(out, "🎨 Tema: %s\n", theme)

	res, err := scaffold.Generate(scaffold.Options{ProjectName: c.ProjectName, Type: typ, Path: c.Path, Theme: theme})
	if res != nil {
		_, _ = fmt.Fprintf(out, "📂 Ubicación: %s\n\n", res.Root)
		for _, d := range res.Directories {
			_, _ = fmt.Fprintf(out, "✅ Creado: %s\n", d)
		}
		for _, f := range res.Files {
			_, _ = fmt.Fprintf(out, "✅ Creado: %s\n", f)
		}
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "\n✨ ¡Configuración completada!")
	_, _ = fmt.Fprintln(out, "\n📋 Próximos pasos:")
	_, _ = fmt.Fprintf(out, "1. cd %s\n", c.Path)
	_, _ = fmt.Fprintln(out, "2. make install  # Instalar dependencias")
	_, _ = fmt.Fprintln(out, "3. make serve    # Iniciar servidor local")
	_, _ = fmt.Fprintln(out, "4. Visitar http://localhost:8000")
	_, _ = fmt.Fprintln(out, "\n💡 Para desplegar en GitHub Pages:")
	_, _ = fmt.Fprintln(out, "   make deploy")
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("setupdocs"),
		kong.Description("Configurar documentación para proyectos."),
		kong.Vars{"version": version.String("setupdocs")},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		_, _ = fmt.Fprintf(stderr, "setupdocs: %v\n", err)
		return 2
	}
	return derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Handle(cli.Run(stdout))
}
