//go:build js && wasm

package history

import "syscall/js"

// BrowserPlatform drives window.location and window.history.
type BrowserPlatform struct {
	window js.Value
}

var _ Platform = (*BrowserPlatform)(nil)

func NewBrowserPlatform() *BrowserPlatform {
	return &BrowserPlatform{window: js.Global()}
}

func (p *BrowserPlatform) location() js.Value { return p.window.Get("location") }
func (p *BrowserPlatform) history() js.Value  { return p.window.Get("history") }

func (p *BrowserPlatform) Href() string {
	return p.location().Get("href").String()
}

func (p *BrowserPlatform) PushState(state State, url string) {
	p.history().Call("pushState", map[string]any{"key": state.Key}, "", url)
}

func (p *BrowserPlatform) ReplaceState(state State, url string) {
	p.history().Call("replaceState", map[string]any{"key": state.Key}, "", url)
}

func (p *BrowserPlatform) Go(n int) {
	p.history().Call("go", n)
}

func (p *BrowserPlatform) AssignHash(fragment string) {
	p.location().Set("hash", fragment)
}

func (p *BrowserPlatform) ReplaceLocation(url string) {
	p.location().Call("replace", url)
}

func (p *BrowserPlatform) SupportsPushState() bool {
	h := p.history()
	return h.Truthy() && h.Get("pushState").Type() == js.TypeFunction
}

// AddEventListener runs fn on its own goroutine: guards may block on
// promises, which would deadlock the JS event loop inside the callback.
func (p *BrowserPlatform) AddEventListener(ev Event, fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		go fn()
		return nil
	})
	p.window.Call("addEventListener", string(ev), cb)
	return func() {
		p.window.Call("removeEventListener", string(ev), cb)
		cb.Release()
	}
}
