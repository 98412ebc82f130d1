package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGenerateHooks{}
	g.OnGenerateStart(ctx, "triangle", 42)
	g.OnGenerateComplete(ctx, "triangle", 3, time.Millisecond, nil)
	g.OnRenderComplete(ctx, "png", 1024, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "png")
	c.OnCacheMiss(ctx, "png")
	c.OnCacheSet(ctx, "png", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/v1/compositions.png")
	h.OnResponse(ctx, "GET", "/api/v1/compositions.png", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGenerate := &testGenerateHooks{}
	SetGenerateHooks(customGenerate)
	if Generate() != customGenerate {
		t.Error("SetGenerateHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Reset() should restore NoopGenerateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGenerateHooks{}
	SetGenerateHooks(custom)
	SetGenerateHooks(nil)

	if Generate() != custom {
		t.Error("SetGenerateHooks(nil) should be ignored")
	}

	Reset()
}

func TestRegister(t *testing.T) {
	t.Cleanup(Reset)

	if Register(struct{}{}) {
		t.Error("a value implementing no hooks should not register")
	}

	h := NewLogHooks(log.New(&bytes.Buffer{}))
	if !Register(h) {
		t.Fatal("LogHooks implements every hook interface")
	}
	if Generate() != h || Cache() != h || HTTP() != h {
		t.Error("Register should install all implemented interfaces")
	}

	cacheOnly := &testCacheHooks{}
	Register(cacheOnly)
	if Cache() != cacheOnly || Generate() != h {
		t.Error("Register should only replace the interfaces it implements")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnGenerateStart(ctx, "", 7)
	h.OnGenerateComplete(ctx, "sun", 1, time.Millisecond, nil)
	h.OnGenerateComplete(ctx, "triangle", 0, time.Millisecond, errors.New("boom"))
	h.OnRenderComplete(ctx, "svg", 300, time.Millisecond, nil)
	h.OnCacheHit(ctx, "png")
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"generate start", "template=random", "seed=7", "generate done", "generate failed", "boom", "rendered", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewLogHooksNilLogger(t *testing.T) {
	if NewLogHooks(nil).Logger == nil {
		t.Error("nil logger should fall back to log.Default()")
	}
}

// Test implementations
type testGenerateHooks struct{ NoopGenerateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
