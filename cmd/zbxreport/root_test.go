package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/zbxreport/internal/config"
	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/report"
	"codeberg.org/mutker/zbxreport/internal/zabbix/zabbixtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newZabbix(t *testing.T) *zabbixtest.Server {
	t.Helper()

	srv := zabbixtest.NewServer()
	t.Cleanup(srv.Close)

	srv.Handle("host.get", func(map[string]any) (any, *zabbixtest.Error) {
		return []map[string]any{
			{"hostid": "101", "name": "web01", "parentTemplates": []map[string]string{{"templateid": "9001"}}},
			{"hostid": "102", "name": "db01", "parentTemplates": []any{}},
		}, nil
	})
	srv.Handle("usermacro.get", func(p map[string]any) (any, *zabbixtest.Error) {
		if p["globalmacro"] == true {
			return []map[string]string{
				{"macro": "{$CPU.UTIL.CRIT}", "value": "90"},
				{"macro": "{$MEMORY.UTIL.MAX}", "value": "90"},
			}, nil
		}
		switch p["hostids"] {
		case "9001":
			return []map[string]string{{"macro": "{$CPU.UTIL.CRIT}", "value": "85"}}, nil
		case "102":
			return []map[string]string{{"macro": "{$memory.util.max}", "value": "95"}}, nil
		}
		return []any{}, nil
	})
	srv.Handle("item.get", func(p map[string]any) (any, *zabbixtest.Error) {
		if p["hostids"] != "101" {
			return []any{}, nil
		}
		search, _ := p["search"].(map[string]any)
		if search["key_"] == "system.cpu.util" {
			return []map[string]string{{"key_": "system.cpu.util", "lastvalue": "17.2"}}, nil
		}
		return []map[string]string{{"key_": "vm.memory.size[pused]", "lastvalue": "63.9"}}, nil
	})

	return srv
}

func isolate(t *testing.T) {
	t.Helper()

	t.Setenv(config.EnvConfig, "")
	t.Setenv("HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestRootWritesReport(t *testing.T) {
	isolate(t)
	srv := newZabbix(t)
	output := filepath.Join(t.TempDir(), "Hosts")

	stdout, err := execute(t,
		"--url", srv.URL, "--user", "Admin", "--password", "zabbix",
		"-g", "2", "-o", output, "-f", "csv",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, output+".csv")
	assert.Contains(t, stdout, "2 hosts")

	file, err := os.Open(output + ".csv")
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		report.Header,
		{"web01", "17.2", "N/A", "85", "63.9", "N/A", "90"},
		{"db01", "N/A", "N/A", "90", "N/A", "N/A", "95"},
	}, records)

	assert.Equal(t, 1, srv.Count("user.login"))
	assert.Equal(t, 1, srv.Count("user.logout"))
}

func TestRootEmptyGroup(t *testing.T) {
	isolate(t)
	srv := newZabbix(t)
	srv.Handle("host.get", func(map[string]any) (any, *zabbixtest.Error) {
		return []any{}, nil
	})
	output := filepath.Join(t.TempDir(), "empty.xlsx")

	stdout, err := execute(t,
		"--url", srv.URL, "--user", "Admin", "--password", "zabbix", "-g", "77", "-o", output,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No hosts found in group")
	assert.NoFileExists(t, output)
	assert.Zero(t, srv.Count("usermacro.get"))
	assert.Equal(t, 1, srv.Count("user.logout"))
}

func TestRootLookupFailure(t *testing.T) {
	isolate(t)
	srv := newZabbix(t)
	srv.Handle("item.get", func(map[string]any) (any, *zabbixtest.Error) {
		return nil, &zabbixtest.Error{Code: -32500, Message: "Application error."}
	})
	output := filepath.Join(t.TempDir(), "failed.xlsx")

	_, err := execute(t,
		"--url", srv.URL, "--user", "Admin", "--password", "zabbix", "-g", "2", "-o", output,
	)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrLookup))
	assert.NoFileExists(t, output)
	assert.Equal(t, 1, srv.Count("user.logout"))
}

func TestRootAuthenticationFailure(t *testing.T) {
	isolate(t)
	srv := newZabbix(t)
	srv.Handle("user.login", func(map[string]any) (any, *zabbixtest.Error) {
		return nil, &zabbixtest.Error{Code: -32602, Message: "Invalid params.", Data: "Incorrect user name or password."}
	})

	_, err := execute(t,
		"--url", srv.URL, "--user", "Admin", "--password", "nope", "-g", "2",
		"-o", filepath.Join(t.TempDir(), "r"),
	)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAuthentication))
	assert.Zero(t, srv.Count("host.get"))
	assert.Zero(t, srv.Count("user.logout"))
}

func TestRootArguments(t *testing.T) {
	isolate(t)

	tcs := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"should fail without credentials", []string{"--url", "http://zbx"}, errors.ErrMissingConfig},
		{"should fail with an unknown format", []string{"--url", "http://zbx", "--user", "u", "--password", "p", "-g", "1", "-f", "ods"}, errors.ErrUnknownFormat},
		{"should fail with an unsupported scheme", []string{"--url", "ftp://zbx", "--user", "u", "--password", "p", "-g", "1"}, errors.ErrInvalidConfig},
	}

	for _, tt := range tcs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), err.Error())
		})
	}

	_, err := execute(t, "positional")
	assert.Error(t, err)
}
