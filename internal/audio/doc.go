// Package audio plays the alarm song.
// It uses the beep library to decode WAV, OGG, and MP3 files and blocks
// until the speaker has drained the whole track.
package audio
