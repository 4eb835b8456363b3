package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

// LaunchScript is a rendered start script
type LaunchScript struct {
	FileName string
	Content  string
	Mode     uint32
}

// LaunchScriptOptions contains the inputs for rendering a start script
type LaunchScriptOptions struct {
	Result  *entities.AcquisitionResult
	RAMMB   int
	Windows bool
	JavaCmd string
	PHPCmd  string
}

// LaunchScriptService renders start scripts from an acquisition result
type LaunchScriptService struct{}

// NewLaunchScriptService creates a new launch script service
func NewLaunchScriptService() *LaunchScriptService {
	return &LaunchScriptService{}
}

// Render builds the start script for the executable produced by the pipeline
func (s *LaunchScriptService) Render(opts LaunchScriptOptions) (*LaunchScript, error) {
	if opts.Result == nil || opts.Result.ExecutablePath == "" {
		return nil, fmt.Errorf("no executable to launch")
	}

	javaCmd := opts.JavaCmd
	if javaCmd == "" {
		javaCmd = "java"
	}
	phpCmd := opts.PHPCmd
	if phpCmd == "" {
		phpCmd = "php"
	}

	execName := filepath.Base(opts.Result.ExecutablePath)

	var line string
	switch opts.Result.LaunchKind {
	case entities.LaunchJavaArchive:
		if opts.RAMMB <= 0 {
			return nil, fmt.Errorf("RAM allocation must be positive, got %d", opts.RAMMB)
		}
		memory := fmt.Sprintf("-Xmx%dM -Xms%dM", opts.RAMMB, opts.RAMMB)
		if opts.Result.JVMArgsFile != "" {
			argsFile := s.platformArgsFile(opts.Result.JVMArgsFile, opts.Windows)
			line = fmt.Sprintf("%s %s @user_jvm_args.txt @%s nogui", javaCmd, memory, argsFile)
		} else {
			line = fmt.Sprintf("%s %s -jar %q nogui", javaCmd, memory, execName)
		}
	case entities.LaunchPHPArchive:
		line = fmt.Sprintf("%s %q", phpCmd, execName)
	default:
		return nil, fmt.Errorf("unknown launch kind %q for %s", opts.Result.LaunchKind, execName)
	}

	if opts.Windows {
		return &LaunchScript{
			FileName: "start.bat",
			Content:  line + "\r\n",
			Mode:     0o644,
		}, nil
	}

	return &LaunchScript{
		FileName: "start.sh",
		Content:  "#!/bin/bash\n" + line + "\n",
		Mode:     0o755,
	}, nil
}

// platformArgsFile fills the {platform} placeholder of a JVM args file template
func (s *LaunchScriptService) platformArgsFile(template string, windows bool) string {
	platform := "unix"
	if windows {
		platform = "win"
	}
	return strings.ReplaceAll(template, "{platform}", platform)
}
