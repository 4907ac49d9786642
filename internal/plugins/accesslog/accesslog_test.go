package accesslog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf-project/spf/internal/entrypoint"
	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/option"
)

func TestInit_RegistersAndAdvertises(t *testing.T) {
	m, err := module.Default.Import(ModulePath)
	require.NoError(t, err)
	inst, err := m.Attr("instance")
	require.NoError(t, err)
	assert.Same(t, Instance, inst)

	var found bool
	for _, ep := range entrypoint.Default.Entries(entrypoint.Namespace) {
		if ep.Name == "AccessLog" {
			found = true
			assert.Equal(t, ModulePath, ep.Module)
			assert.Equal(t, []string{"instance"}, ep.Attrs)
		}
	}
	assert.True(t, found, "AccessLog should be advertised")
}

func TestConfigure(t *testing.T) {
	p := New()

	err := p.Configure(option.Parse("remote_addr,user_agent,format=%(path)s,enabled=False"))
	require.NoError(t, err)

	assert.Equal(t, []string{"remote_addr", "user_agent"}, p.Fields)
	assert.Equal(t, "%(path)s", p.Format)
	assert.False(t, p.Enabled)
}

func TestConfigure_Defaults(t *testing.T) {
	p := New()
	require.NoError(t, p.Configure(option.Empty()))

	assert.Equal(t, DefaultFormat, p.Format)
	assert.True(t, p.Enabled)
}

func TestConfigure_RejectsWrongTypes(t *testing.T) {
	assert.Error(t, New().Configure(option.Parse("enabled=yes")))
	assert.Error(t, New().Configure(option.Parse("format=3")))
}

func TestConfigure_InvalidOptionLeavesPluginUnchanged(t *testing.T) {
	p := New()

	err := p.Configure(option.Parse("remote_addr,format=5"))
	require.Error(t, err)

	assert.Empty(t, p.Fields)
	assert.Equal(t, DefaultFormat, p.Format)
	assert.True(t, p.Enabled)
}

func TestConfigure_ReplacesFields(t *testing.T) {
	p := New()

	require.NoError(t, p.Configure(option.Parse("a")))
	require.NoError(t, p.Configure(option.Parse("a,2")))

	assert.Equal(t, []string{"a", "2"}, p.Fields)
}
