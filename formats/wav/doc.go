// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes uncompressed PCM WAVE files.
//
// Decoder handles the canonical layout only: a 44-byte header where the
// fmt chunk is immediately followed by the data chunk. Header fields are
// read in order and the first short or mismatched one is reported as a
// *HeaderError naming the field:
//
//	clip, err := wav.Decode("shot.wav")
//	var herr *wav.HeaderError
//	if errors.As(err, &herr) {
//		log.Printf("bad header at %s", herr.Field)
//	}
//
// The channel/bit-depth pair is not checked while decoding. A 24-bit file
// decodes fine and is rejected later by audio.Format.Layout.
//
// ChunkDecoder walks the chunk list with github.com/go-audio/wav and so
// copes with LIST or fact chunks before the data. Chunks and IsCanonical
// tell the two kinds of file apart.
//
// Encode writes the canonical layout for the four device layouts (mono or
// stereo, 8 or 16 bit). EncodeFile does the same through the go-audio
// encoder.
package wav
