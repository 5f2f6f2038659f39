// Package browser connects the injector to a real Chromium tab over the
// DevTools protocol.
//
// The agent attaches to a browser that was started with
// --remote-debugging-port and acts on the page the user is looking at: the
// visible tab with focus, else the first visible tab. Tabs are detached on
// shutdown, never closed. Element operations run as small JavaScript snippets evaluated in the
// tab, each one re-querying its selector, so no remote object handles are
// held between calls.
package browser
