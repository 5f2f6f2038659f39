// Phiscrub is a local CLI that removes protected health information from
// clinical text before it is pasted into an AI chat.
//
// Redaction runs against a local Ollama model; nothing leaves the machine.
// The page agent attaches to a running Chromium over the DevTools protocol
// and inserts the redacted text into the chat input of the active tab.
//
// Usage:
//
//	phiscrub status                    # check Ollama and the phi3 model
//	phiscrub scrub "Seen by Ann..."    # redact text given as an argument
//	phiscrub scrub < note.txt          # redact text from stdin
//	phiscrub agent                     # run the page agent
//	phiscrub scrub --insert < note.txt # redact, then insert into the page
//	phiscrub insert < redacted.txt     # insert already-redacted text
package main
