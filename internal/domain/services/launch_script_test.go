package services

import (
	"strings"
	"testing"

	"github.com/ochairo/playport/internal/domain/entities"
)

func TestLaunchScriptService_Render(t *testing.T) {
	s := NewLaunchScriptService()

	tests := []struct {
		name         string
		opts         LaunchScriptOptions
		wantFile     string
		wantContains string
		wantErr      bool
	}{
		{
			name: "java archive on unix",
			opts: LaunchScriptOptions{
				Result: &entities.AcquisitionResult{
					ExecutablePath: "/srv/lobby/paper-1.20.4-496.jar",
					LaunchKind:     entities.LaunchJavaArchive,
				},
				RAMMB: 2048,
			},
			wantFile:     "start.sh",
			wantContains: `java -Xmx2048M -Xms2048M -jar "paper-1.20.4-496.jar" nogui`,
		},
		{
			name: "java archive on windows",
			opts: LaunchScriptOptions{
				Result: &entities.AcquisitionResult{
					ExecutablePath: `C:\srv\lobby\minecraft_server.1.20.1.jar`,
					LaunchKind:     entities.LaunchJavaArchive,
				},
				RAMMB:   1024,
				Windows: true,
			},
			wantFile:     "start.bat",
			wantContains: "-Xmx1024M",
		},
		{
			name: "neoforge args file",
			opts: LaunchScriptOptions{
				Result: &entities.AcquisitionResult{
					ExecutablePath: "/srv/modded/neoforge-20.4.80-installer.jar",
					LaunchKind:     entities.LaunchJavaArchive,
					JVMArgsFile:    "libraries/net/neoforged/neoforge/20.4.80/{platform}_args.txt",
				},
				RAMMB: 4096,
			},
			wantFile:     "start.sh",
			wantContains: "@user_jvm_args.txt @libraries/net/neoforged/neoforge/20.4.80/unix_args.txt nogui",
		},
		{
			name: "php archive",
			opts: LaunchScriptOptions{
				Result: &entities.AcquisitionResult{
					ExecutablePath: "/srv/bedrock/PocketMine-MP.phar",
					LaunchKind:     entities.LaunchPHPArchive,
				},
			},
			wantFile:     "start.sh",
			wantContains: `php "PocketMine-MP.phar"`,
		},
		{
			name: "java archive without RAM",
			opts: LaunchScriptOptions{
				Result: &entities.AcquisitionResult{
					ExecutablePath: "/srv/x/server.jar",
					LaunchKind:     entities.LaunchJavaArchive,
				},
			},
			wantErr: true,
		},
		{
			name:    "missing result",
			opts:    LaunchScriptOptions{RAMMB: 1024},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := s.Render(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if script.FileName != tt.wantFile {
				t.Errorf("Render() file = %s, want %s", script.FileName, tt.wantFile)
			}
			if !strings.Contains(script.Content, tt.wantContains) {
				t.Errorf("Render() content = %q, want it to contain %q", script.Content, tt.wantContains)
			}
			if !tt.opts.Windows && !strings.HasPrefix(script.Content, "#!/bin/bash\n") {
				t.Errorf("unix script missing shebang: %q", script.Content)
			}
		})
	}
}
