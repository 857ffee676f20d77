package main

import (
	"bytes"
	"context"
	"testing"

	"sortbench/internal/benchmark"
	"sortbench/internal/db"

	"github.com/spf13/viper"
)

// mockStore keeps runs in memory.
type mockStore struct {
	runs   []benchmark.Run
	closed bool
}

func (m *mockStore) Save(ctx context.Context, run *benchmark.Run) error {
	run.ID = int64(len(m.runs) + 1)
	m.runs = append(m.runs, *run)
	return nil
}

func (m *mockStore) LoadLatest(ctx context.Context) (*benchmark.Run, error) {
	if len(m.runs) == 0 {
		return nil, nil
	}
	latest := m.runs[len(m.runs)-1]
	return &latest, nil
}

func (m *mockStore) LoadAll(ctx context.Context) ([]benchmark.Run, error) {
	return append([]benchmark.Run(nil), m.runs...), nil
}

func (m *mockStore) Close() error {
	m.closed = true
	return nil
}

// useMockStore routes every store opened by the commands to store.
func useMockStore(t *testing.T, store *mockStore) *db.StoreConfig {
	t.Helper()
	var got db.StoreConfig
	old := newStoreFunc
	newStoreFunc = func(cfg db.StoreConfig) (benchmark.Store, error) {
		got = cfg
		return store, nil
	}
	t.Cleanup(func() { newStoreFunc = old })
	return &got
}

// executeCommand runs a fresh command tree with args and returns stdout and
// stderr separately.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// smallRun keeps command tests fast.
var smallRun = []string{"--sizes", "5,20", "--runs", "1", "--seed", "7", "--no-color"}

func withSmallRun(args ...string) []string {
	return append(append([]string(nil), smallRun...), args...)
}
