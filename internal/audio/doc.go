// Package audio plays the chime that accompanies a banner. WAV, Ogg Vorbis
// and MP3 files are decoded once with beep and replayed from memory.
package audio
