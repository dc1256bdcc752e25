// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/formats/vorbis"
	"github.com/ik5/audmgr/formats/wav"
)

// ExampleDecoder_Decode decodes an Ogg Vorbis file into a 16-bit clip.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	clip, err := vorbis.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(clip.Format)
}

// ExampleDecoder_Decode_toWav stores a decoded stream as WAV for faster
// loading later.
func ExampleDecoder_Decode_toWav() {
	clip, err := audio.DecodeFile(vorbis.Decoder{}, "input.ogg")
	if err != nil {
		log.Fatal(err)
	}

	if err := wav.EncodeFile("input.wav", clip); err != nil {
		log.Fatal(err)
	}
}
