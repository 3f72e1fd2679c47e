package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"foodshop/internal/model"
	"foodshop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readAccounts(t *testing.T, dir string) []model.Account {
	t.Helper()
	store, err := repository.NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	var accounts []model.Account
	for _, raw := range store.ReadAll(context.Background(), repository.CollectionAccounts) {
		var a model.Account
		require.NoError(t, json.Unmarshal(raw, &a))
		accounts = append(accounts, a)
	}
	return accounts
}

func TestCreateUser_Flags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")
	var out bytes.Buffer

	err := newApp(strings.NewReader(""), &out).Run([]string{
		"createuser", "--data-dir", dir,
		"--role", "seller", "--username", "bakery", "--password", "secret", "--email", "b@example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "bakery")

	accounts := readAccounts(t, dir)
	require.Len(t, accounts, 1)
	assert.Equal(t, model.RoleSeller, accounts[0].Role)
	assert.NotEqual(t, "secret", accounts[0].Password)
}

func TestCreateUser_Prompts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")
	var out bytes.Buffer

	in := strings.NewReader("admin\nroot\nhunter2\nroot@example.com\n")
	err := newApp(in, &out).Run([]string{"createuser", "--data-dir", dir})
	require.NoError(t, err)

	accounts := readAccounts(t, dir)
	require.Len(t, accounts, 1)
	assert.Equal(t, model.RoleAdmin, accounts[0].Role)
	assert.Equal(t, "root", accounts[0].Username)
}

func TestCreateUser_RejectsDuplicate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")
	args := []string{
		"createuser", "--data-dir", dir,
		"--role", "seller", "--username", "bakery", "--password", "secret", "--email", "b@example.com",
	}

	require.NoError(t, newApp(strings.NewReader(""), &bytes.Buffer{}).Run(args))
	err := newApp(strings.NewReader(""), &bytes.Buffer{}).Run(args)
	assert.ErrorContains(t, err, "用户名已存在")
	assert.Len(t, readAccounts(t, dir), 1)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DRIVER", "file")

	err := newApp(strings.NewReader(""), &bytes.Buffer{}).Run([]string{
		"createuser", "--data-dir", dir,
		"--role", "customer", "--username", "x", "--password", "y", "--email", "z@example.com",
	})
	assert.Error(t, err)
	assert.Empty(t, readAccounts(t, filepath.Clean(dir)))
}
