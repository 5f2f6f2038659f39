// Package inject writes text into the chat input of the active browser tab.
//
// The injector works against small [Page], [Document] and [Element]
// interfaces rather than a concrete browser, so the same logic runs against
// a live tab (see package browser) and against stub DOMs in tests.
//
// An insertion has three steps:
//
//  1. Eligibility: the tab URL must contain one of the allow-listed host
//     fragments. Otherwise the call fails with [UnsupportedPageError] and the
//     document is never opened.
//  2. Resolution: selectors are tried in priority order and the first
//     visible match wins. The match is classified once as a content-editable
//     container or a form control, and that [Kind] picks the insertion
//     strategy.
//  3. Insertion: the text is written, synthetic input and change events are
//     dispatched, the element is focused and the caret moved to the end.
//
// Nothing is rolled back when insertion fails part way.
package inject
