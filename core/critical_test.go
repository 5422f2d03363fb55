package core

import (
	"sync"
	"testing"
	"time"
)

func TestCriticalSectionEnterTwice(t *testing.T) {
	cs := NewCriticalSection()

	if !cs.Enter() {
		t.Fatal("first Enter should succeed")
	}
	if cs.Enter() {
		t.Error("second Enter without Exit should fail")
	}
	if !cs.Held() {
		t.Error("section should still be held")
	}
	if !cs.Exit() {
		t.Error("Exit after Enter should succeed")
	}
	if cs.Held() {
		t.Error("section should be free after Exit")
	}
}

func TestCriticalSectionExitWithoutEnter(t *testing.T) {
	cs := NewCriticalSection()

	if cs.Exit() {
		t.Error("Exit on a free section should fail")
	}

	cs.Enter()
	cs.Exit()
	if cs.Exit() {
		t.Error("second Exit should fail")
	}
}

func TestCriticalSectionGuard(t *testing.T) {
	cs := NewCriticalSection()

	ran := false
	cs.Guard(func() {
		ran = true
		if !cs.Held() {
			t.Error("section should be held inside Guard")
		}
	})
	if !ran {
		t.Fatal("Guard did not run fn")
	}
	if cs.Held() {
		t.Error("Guard should release a section it entered")
	}

	// An outer hold survives a nested Guard
	cs.Enter()
	cs.Guard(func() {})
	if !cs.Held() {
		t.Error("nested Guard released the outer hold")
	}
	cs.Exit()
}

func TestCriticalSectionExclusiveWaitsForHolder(t *testing.T) {
	cs := NewCriticalSection()
	cs.Enter()

	done := make(chan struct{})
	go func() {
		cs.Exclusive(func() {})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Exclusive ran while another context held the section")
	case <-time.After(10 * time.Millisecond):
	}
	cs.Exit()
	<-done
	if cs.Held() {
		t.Error("Exclusive should release the section")
	}
}

func TestCriticalSectionExclusiveSerializes(t *testing.T) {
	cs := NewCriticalSection()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				cs.Exclusive(func() { counter++ })
			}
		}()
	}
	wg.Wait()

	if counter != 8000 {
		t.Errorf("counter = %d, want 8000", counter)
	}
}
