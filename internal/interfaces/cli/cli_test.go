package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spf-project/spf/internal/config"
	"github.com/spf-project/spf/internal/entrypoint"
	"github.com/spf-project/spf/internal/interfaces/di"
	"github.com/spf-project/spf/internal/loader"
	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/plugins/accesslog"
	"github.com/spf-project/spf/internal/plugins/cors"
	"github.com/spf-project/spf/internal/settings"
)

const sampleConfig = `[app]
debug = true

[plugins]
accesslog = remote_addr,format=%%(path)s,enabled=False
CORS = origins=https://a.example https://b.example,max_age=600
`

type harness struct {
	cli       *CLIContainer
	access    *accesslog.Plugin
	cors      *cors.Plugin
	stdout    bytes.Buffer
	logs      bytes.Buffer
	modules   *module.Table
	registry  *entrypoint.Registry
	workspace string
}

// newHarness changes into a temporary workspace holding spf.ini and wires
// fresh registries with the builtin plugins.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		access:    accesslog.New(),
		cors:      &cors.Plugin{},
		modules:   module.NewTable(),
		registry:  entrypoint.NewRegistry(),
		workspace: t.TempDir(),
	}
	require.NoError(t, h.modules.Add(module.New(accesslog.ModulePath, map[string]any{"instance": h.access})))
	require.NoError(t, h.modules.Add(module.New(cors.ModulePath, map[string]any{"plugin": h.cors})))
	h.advertise(t, "AccessLog = "+accesslog.ModulePath+":instance")
	h.advertise(t, "cors = "+cors.ModulePath)

	require.NoError(t, os.WriteFile(filepath.Join(h.workspace, "spf.ini"), []byte(sampleConfig), 0o644))
	t.Chdir(h.workspace)

	h.cli = NewCLIContainer(func(cmd *cobra.Command, s settings.Settings) *di.Container {
		return di.NewContainer(s, &h.logs, di.WithRegistries(h.modules, h.registry))
	})
	return h
}

func (h *harness) advertise(t *testing.T, text string) {
	t.Helper()
	ep, err := entrypoint.Parse(text)
	require.NoError(t, err)
	h.registry.Publish(entrypoint.Namespace, ep)
}

func (h *harness) run(args ...string) error {
	cmd := NewRootCommand(h.cli)
	cmd.SetArgs(args)
	cmd.SetOut(&h.stdout)
	cmd.SetErr(&h.logs)
	return cmd.Execute()
}

func TestLoadCommand_RegistersBuiltinPlugins(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("load"))

	out := h.stdout.String()
	assert.Contains(t, out, "PLUGIN")
	assert.Contains(t, out, "AccessLog")
	assert.Contains(t, out, `"remote_addr", format="%(path)s", enabled=False`)
	assert.Contains(t, out, `max_age=600`)
	assert.Contains(t, out, "2 plugins registered with spf.")

	assert.Equal(t, []string{"remote_addr"}, h.access.Fields)
	assert.Equal(t, "%(path)s", h.access.Format)
	assert.False(t, h.access.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, h.cors.Origins)
	assert.EqualValues(t, 600, h.cors.MaxAge)

	assert.Contains(t, h.logs.String(), "Loading spf config file")
	assert.Contains(t, h.logs.String(), "load_id=")
}

func TestLoadCommand_JSONOutput(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("load", "--output", "json", "spf.ini"))

	var reports []PluginReport
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "AccessLog", reports[0].Name)
	assert.Equal(t, 0, reports[0].Order)
	assert.Equal(t, []any{"remote_addr"}, reports[0].Positional)
	assert.Equal(t, false, reports[0].Named["enabled"])
	assert.Equal(t, "cors", reports[1].Name)
	assert.Equal(t, float64(600), reports[1].Named["max_age"])
}

func TestLoadCommand_YAMLOutput(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("load", "-o", "yaml"))

	var reports []PluginReport
	require.NoError(t, yaml.Unmarshal(h.stdout.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "cors", reports[1].Name)
	assert.Equal(t, 600, reports[1].Named["max_age"])
}

func TestLoadCommand_UnknownOutputFormat(t *testing.T) {
	h := newHarness(t)

	err := h.run("load", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLoadCommand_UnresolvedReferenceFails(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile("broken.ini", []byte("[plugins]\ncors\nno.such.plugin\n"), 0o644))

	err := h.run("load", "broken.ini")

	require.ErrorIs(t, err, loader.ErrUnresolvedPlugin)
	assert.EqualError(t, err, "Do not know how to register plugin: no.such.plugin")
	assert.Empty(t, h.stdout.String())
}

func TestLoadCommand_MissingConfigFile(t *testing.T) {
	h := newHarness(t)

	err := h.run("load", "missing.ini")

	require.ErrorIs(t, err, config.ErrNotFound)
}

func TestLoadCommand_ConfigFileFromSettings(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile("only-cors.ini", []byte("[plugins]\ncors\n"), 0o644))
	require.NoError(t, os.WriteFile("custom.toml", []byte("config_file = \"only-cors.ini\"\n"), 0o644))

	require.NoError(t, h.run("--settings", "custom.toml", "load"))

	assert.Contains(t, h.stdout.String(), "cors")
	assert.NotContains(t, h.stdout.String(), "AccessLog")
}

func TestRootCommand_FlagsOverrideSettingsFile(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(settings.DefaultPath, []byte("app = \"from-file\"\nnamespace = \"elsewhere\"\n"), 0o644))

	require.NoError(t, h.run("--namespace", entrypoint.Namespace, "plugins"))

	s := h.cli.Container.Settings
	assert.Equal(t, "from-file", s.App)
	assert.Equal(t, entrypoint.Namespace, s.Namespace)
	assert.Equal(t, "from-file", h.cli.Container.Framework.Name())
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	h := newHarness(t)

	err := h.run("--log-level", "loud", "plugins")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load settings")
}

func TestPluginsCommand_ListsAdvertisedPlugins(t *testing.T) {
	h := newHarness(t)
	h.advertise(t, "ghost = no.such.module")

	require.NoError(t, h.run("plugins"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"NAME", "MODULE", "TARGET"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"AccessLog", accesslog.ModulePath, "instance"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"cors", cors.ModulePath, "module"}, strings.Fields(lines[2]))
	assert.Equal(t, "2 advertised, 3 lookup keys.", lines[3])
	assert.Equal(t, "skipped: Cannot import no.such.module", lines[4])
}

func TestPluginsCommand_Keys(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("plugins", "--keys"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"KEY", "PLUGIN"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"AccessLog", "AccessLog"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"accesslog", "AccessLog"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"cors", "cors"}, strings.Fields(lines[3]))
}

func TestPluginsCommand_Modules(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.modules.Add(module.New("mypkg.empty", nil)))

	require.NoError(t, h.run("plugins", "--modules"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"MODULE", "ATTRIBUTES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"mypkg.empty", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{accesslog.ModulePath, "instance"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{cors.ModulePath, "plugin"}, strings.Fields(lines[3]))
}

func TestPluginsCommand_KeysAndModulesExclusive(t *testing.T) {
	h := newHarness(t)

	assert.Error(t, h.run("plugins", "--keys", "--modules"))
}

func TestSettingsCommand_PrintsEffectiveSettings(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(settings.DefaultPath, []byte("app = \"from-file\"\n"), 0o644))

	require.NoError(t, h.run("--log-format", "json", "settings"))

	out := h.stdout.String()
	assert.Contains(t, out, `app = "from-file"`)
	assert.Contains(t, out, `config_file = "spf.ini"`)
	assert.Contains(t, out, `format = "json"`)
	assert.Contains(t, out, "[log]")
}

func TestPluginsCommand_EmptyNamespace(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--namespace", "nothing_here", "plugins"))

	assert.Contains(t, h.stdout.String(), `No plugins advertised in "nothing_here".`)
}

func TestOptionsCommand_PrintsKinds(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("options", "a,1,2.5,None,key=True"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"0", "string", `"a"`}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "int", "1"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2", "float", "2.5"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"3", "null", "None"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"key", "bool", "True"}, strings.Fields(lines[5]))
}

func TestOptionsCommand_Dump(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("options", "--dump", "x=1"))

	assert.Contains(t, h.stdout.String(), "option.Options")
	assert.Contains(t, h.stdout.String(), "Keys")
}

func TestBrowserModel_Navigation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("plugins"))
	result, err := h.cli.Container.Loader.LoadConfigFile("spf.ini")
	require.NoError(t, err)

	var m tea.Model = newBrowserModel("spf", result)
	assert.Contains(t, m.View(), "> ")
	assert.Contains(t, m.View(), "Registered: 2")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.(browserModel).selectedRow)
	assert.Contains(t, m.View(), "max_age = 600")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.(browserModel).selectedRow)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, m.(browserModel).selectedRow)
	assert.Contains(t, m.View(), "[0] remote_addr")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowserModel_Empty(t *testing.T) {
	m := newBrowserModel("spf", loader.Result{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, next.(browserModel).selectedRow)
	assert.Contains(t, next.View(), "No plugins registered.")
}

func TestLoadCommand_JSONOutputWithInfiniteFloat(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile("inf.ini", []byte("[plugins]\ncors = max_age=1,ratio=1.0e999,floor=-2.5e999\n"), 0o644))

	require.NoError(t, h.run("load", "-o", "json", "inf.ini"))

	var reports []PluginReport
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "+Inf", reports[0].Named["ratio"])
	assert.Equal(t, "-Inf", reports[0].Named["floor"])
	assert.Equal(t, float64(1), reports[0].Named["max_age"])
}
