// Command hlsltc is the hlslt shader front-end CLI.
//
// Usage:
//
//	hlsltc [options] <input.hlsl>
//
// Examples:
//
//	hlsltc shader.hlsl                       # Parse and analyze with defaults
//	hlsltc -entry PS -target fragment shader.hlsl
//	hlsltc -project shader.toml shader.hlsl  # Read configuration from a project file
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pterm/pterm"

	"github.com/gogpu/hlslt"
	"github.com/gogpu/hlslt/sema"
)

var (
	entry       = flag.String("entry", "", "entry point function name (default: main)")
	target      = flag.String("target", "", "shader target: vertex, fragment, geometry, hull, domain, compute")
	glslVersion = flag.String("glsl", "", "GLSL version for code generation, e.g. 330")
	project     = flag.String("project", "", "TOML project file with shader configuration")
	versionInfo = flag.Bool("version", false, "print version")
)

const hlsltVersion = "0.1.0-dev"

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	infoColorFG  = pterm.FgLightGreen
)

// tomlProjectFile represents the shader project file as it is encoded in TOML.
type tomlProjectFile struct {
	Shader *tomlShader `toml:"shader"`
}

// tomlShader represents the shader configuration section.
type tomlShader struct {
	Entry   string `toml:"entry"`
	Target  string `toml:"target"`
	Version string `toml:"glsl-version"`
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionInfo {
		fmt.Printf("hlsltc version %s\n", hlsltVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	inputPath := args[0]

	opts, err := buildOptions()
	if err != nil {
		printError("Config Error", err)
		os.Exit(1)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		printError("File Error", err)
		os.Exit(1)
	}

	program, err := hlslt.Parse(string(source))
	if err != nil {
		printError("Syntax Error", err)
		os.Exit(1)
	}

	errorCount := 0
	opts.Reporter = sema.ReporterFunc(func(msg string) {
		errorCount++
		errorStyleBG.Print("Context Error")
		errorColorFG.Println(diagnosticBody(msg))
	})

	if !hlslt.Decorate(program, opts) {
		fmt.Print("analysis failed (")
		errorColorFG.Print(errorCount)
		if errorCount == 1 {
			fmt.Println(" error)")
		} else {
			fmt.Println(" errors)")
		}
		os.Exit(1)
	}

	fmt.Print("analyzed ")
	infoColorFG.Print(inputPath)
	fmt.Printf(" (entry: %s, target: %s, %s)\n", opts.EntryPoint, opts.Target, opts.Version)
}

// buildOptions merges the project file (when given) with command-line flags;
// flags win.
func buildOptions() (hlslt.Options, error) {
	opts := hlslt.DefaultOptions()

	if *project != "" {
		buff, err := os.ReadFile(*project)
		if err != nil {
			return opts, err
		}
		tpf := &tomlProjectFile{}
		if err := toml.Unmarshal(buff, tpf); err != nil {
			return opts, fmt.Errorf("invalid project file: %w", err)
		}
		if tpf.Shader != nil {
			if tpf.Shader.Entry != "" {
				opts.EntryPoint = tpf.Shader.Entry
			}
			if tpf.Shader.Target != "" {
				t, err := sema.ParseTarget(tpf.Shader.Target)
				if err != nil {
					return opts, err
				}
				opts.Target = t
			}
			if tpf.Shader.Version != "" {
				v, err := sema.ParseVersion(tpf.Shader.Version)
				if err != nil {
					return opts, err
				}
				opts.Version = v
			}
		}
	}

	if *entry != "" {
		opts.EntryPoint = *entry
	}
	if *target != "" {
		t, err := sema.ParseTarget(*target)
		if err != nil {
			return opts, err
		}
		opts.Target = t
	}
	if *glslVersion != "" {
		v, err := sema.ParseVersion(*glslVersion)
		if err != nil {
			return opts, err
		}
		opts.Version = v
	}

	return opts, nil
}

// diagnosticBody strips the library's "context error" prefix from a reported
// message; the banner already names the error channel.
func diagnosticBody(msg string) string {
	return strings.TrimPrefix(msg, "context error")
}

func printError(tag string, err error) {
	errorStyleBG.Print(tag)
	errorColorFG.Println(" " + err.Error())
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: hlsltc [options] <input.hlsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  hlsltc shader.hlsl                  Analyze with defaults\n")
	fmt.Fprintf(os.Stderr, "  hlsltc -entry PS shader.hlsl        Use PS as the entry point\n")
	fmt.Fprintf(os.Stderr, "  hlsltc -project shader.toml shader.hlsl\n")
}
