package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	rt "github.com/arnodel/golua/runtime"
)

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	config := DefaultConfig()
	config.Stdout = nil
	runtime, err := New(config)
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	t.Cleanup(func() { runtime.Close() })
	return runtime
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.CPULimit != 10_000_000 {
		t.Errorf("expected CPULimit 10000000, got %d", config.CPULimit)
	}
	if config.CallCPULimit != 1_000_000 {
		t.Errorf("expected CallCPULimit 1000000, got %d", config.CallCPULimit)
	}
	if config.MemoryLimit != 50*1024*1024 {
		t.Errorf("expected MemoryLimit %d, got %d", 50*1024*1024, config.MemoryLimit)
	}
	if config.Stdout != os.Stdout {
		t.Error("expected Stdout to be os.Stdout")
	}
}

func TestLoadString(t *testing.T) {
	runtime := newRuntime(t)

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "valid code", code: "return 42"},
		{name: "valid function", code: "function f(x) return x end"},
		{name: "syntax error", code: "invalid lua syntax {{}}", wantErr: true},
		{name: "empty code", code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closure, err := runtime.LoadString(tt.name, tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && closure == nil {
				t.Error("expected closure to be non-nil")
			}
		})
	}
}

func TestExecuteString(t *testing.T) {
	runtime := newRuntime(t)

	tests := []struct {
		name       string
		code       string
		wantResult interface{}
		wantErr    bool
	}{
		{name: "return integer", code: "return 42", wantResult: int64(42)},
		{name: "return string", code: `return "hello"`, wantResult: "hello"},
		{name: "return calculation", code: "return 10 + 20 * 2", wantResult: int64(50)},
		{name: "return nil", code: "return nil", wantResult: nil},
		{name: "syntax error", code: "return {{invalid", wantErr: true},
		{name: "runtime error", code: `error("boom")`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := runtime.ExecuteString(tt.name, tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExecuteString() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			switch expected := tt.wantResult.(type) {
			case int64:
				got, ok := rt.ToInt(result)
				if !ok || got != expected {
					t.Errorf("expected %d, got %v", expected, result)
				}
			case string:
				if result.AsString() != expected {
					t.Errorf("expected %q, got %q", expected, result.AsString())
				}
			case nil:
				if result != rt.NilValue {
					t.Errorf("expected nil, got %v", result)
				}
			}
		})
	}
}

func TestExecuteFile(t *testing.T) {
	runtime := newRuntime(t)
	path := filepath.Join(t.TempDir(), "scene.lua")
	if err := os.WriteFile(path, []byte("return 7"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := runtime.ExecuteFile(path)
	if err != nil {
		t.Fatalf("ExecuteFile() error = %v", err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 7 {
		t.Errorf("expected 7, got %v", result)
	}

	if _, err := runtime.ExecuteFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadFileFromFS(t *testing.T) {
	runtime := newRuntime(t)
	fsys := fstest.MapFS{
		"scenes/sine.lua": {Data: []byte("return 1 + 1")},
	}

	closure, err := runtime.LoadFileFromFS(fsys, "scenes/sine.lua")
	if err != nil {
		t.Fatalf("LoadFileFromFS() error = %v", err)
	}
	result, err := runtime.Execute(closure)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 2 {
		t.Errorf("expected 2, got %v", result)
	}

	if _, err := runtime.LoadFileFromFS(fsys, "nope.lua"); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSetGoFunction(t *testing.T) {
	runtime := newRuntime(t)

	addFunc := func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		a, _ := c.IntArg(0)
		b, _ := c.IntArg(1)
		return c.PushingNext1(t.Runtime, rt.IntValue(a+b)), nil
	}
	runtime.SetGoFunction("add", addFunc, 2, false)

	result, err := runtime.ExecuteString("test", "return add(10, 20)")
	if err != nil {
		t.Fatalf("failed to execute Lua code: %v", err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 30 {
		t.Errorf("expected 30, got %v", result)
	}
}

func TestCallFunction(t *testing.T) {
	runtime := newRuntime(t)

	if _, err := runtime.ExecuteString("setup", `
		function multiply(a, b)
			return a * b
		end
	`); err != nil {
		t.Fatalf("failed to define function: %v", err)
	}

	result, err := runtime.CallFunction("multiply", rt.IntValue(5), rt.IntValue(7))
	if err != nil {
		t.Fatalf("CallFunction() error = %v", err)
	}
	if got, ok := rt.ToInt(result); !ok || got != 35 {
		t.Errorf("expected 35, got %v", result)
	}

	if _, err := runtime.CallFunction("nonexistent"); err == nil {
		t.Error("expected error for non-existent function")
	}
}

func TestCallRejectsNonFunction(t *testing.T) {
	runtime := newRuntime(t)
	if _, err := runtime.Call(rt.IntValue(1)); !errors.Is(err, ErrNotCallable) {
		t.Errorf("Call(1) error = %v, want ErrNotCallable", err)
	}
}

func TestOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	config := DefaultConfig()
	config.Stdout = buf
	runtime, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	defer runtime.Close()

	if _, err := runtime.ExecuteString("print", `print("hello")`); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(runtime.Output(), "hello") {
		t.Errorf("captured output = %q", runtime.Output())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("stdout = %q", buf.String())
	}

	runtime.ClearOutput()
	if runtime.Output() != "" {
		t.Errorf("output after clear = %q", runtime.Output())
	}
}

func TestResourceLimits(t *testing.T) {
	runtime, err := New(RuntimeConfig{
		CPULimit:    100,
		MemoryLimit: 1 * 1024 * 1024,
	})
	if err != nil {
		t.Fatalf("failed to create runtime: %v", err)
	}
	defer runtime.Close()

	code := `
		local sum = 0
		for i = 1, 100000 do
			sum = sum + i
		end
		return sum
	`
	if _, err := runtime.ExecuteString("heavy", code); err == nil {
		t.Error("expected an error from the CPU limit")
	}
}

func TestConfig(t *testing.T) {
	config := RuntimeConfig{CPULimit: 5_000_000, MemoryLimit: 25 * 1024 * 1024, CallCPULimit: 10}
	runtime, err := New(config)
	if err != nil {
		t.Fatal(err)
	}
	defer runtime.Close()

	if got := runtime.Config(); got != config {
		t.Errorf("Config() = %+v, want %+v", got, config)
	}
}
