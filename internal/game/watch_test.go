package game

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"go.viam.com/test"
)

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "colors.ini")
	other := filepath.Join(dir, "unrelated.txt")
	tree := filepath.Join(dir, "retroarch")
	test.That(t, os.WriteFile(file, []byte("[a]\n"), 0o644), test.ShouldBeNil)
	test.That(t, os.Mkdir(tree, 0o755), test.ShouldBeNil)

	changed := make(chan string, 16)
	w := NewFileWatcher([]string{file, tree}, 100*time.Millisecond, func(p string) { changed <- p }, zaptest.NewLogger(t).Sugar())
	test.That(t, w.Start(), test.ShouldBeNil)
	defer w.Stop()

	test.That(t, os.WriteFile(other, []byte("x"), 0o644), test.ShouldBeNil)
	select {
	case p := <-changed:
		t.Fatalf("unexpected change for %s", p)
	case <-time.After(300 * time.Millisecond):
	}

	// a burst collapses into one callback
	for i := 0; i < 5; i++ {
		test.That(t, os.WriteFile(file, []byte("[a]\nP1_BUTTON1=Red\n"), 0o644), test.ShouldBeNil)
	}
	select {
	case p := <-changed:
		test.That(t, p, test.ShouldEqual, file)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case p := <-changed:
		t.Fatalf("burst reported twice (%s)", p)
	case <-time.After(300 * time.Millisecond):
	}

	test.That(t, os.WriteFile(filepath.Join(tree, "core.xml"), []byte("<system/>"), 0o644), test.ShouldBeNil)
	select {
	case p := <-changed:
		test.That(t, p, test.ShouldEqual, filepath.Join(tree, "core.xml"))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for directory")
	}
}

func TestFileWatcherStopWithoutStart(t *testing.T) {
	w := NewFileWatcher(nil, time.Millisecond, nil, nil)
	w.Stop()
	w.Stop()
}

func TestFileWatcherConcurrentStop(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWatcher([]string{dir}, time.Millisecond, nil, zaptest.NewLogger(t).Sugar())

	var (
		wg       sync.WaitGroup
		startErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		startErr = w.Start()
	}()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()
	test.That(t, startErr, test.ShouldBeNil)

	// once started, Stop returns only after the dispatch goroutine is gone
	w.Stop()
	select {
	case <-w.done:
	default:
		t.Fatal("dispatch goroutine still running")
	}
}
