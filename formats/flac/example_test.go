// SPDX-License-Identifier: EPL-2.0

package flac_test

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ik5/audmgr/audio"
	"github.com/ik5/audmgr/formats/flac"
)

func ExampleDecoder_Decode() {
	clip, err := audio.DecodeFile(flac.Decoder{}, "input.flac")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(clip.Format)
}

func ExampleDecoder_Decode_notFlac() {
	_, err := flac.Decoder{}.Decode(strings.NewReader("ID3 tagged mp3"))
	fmt.Println(errors.Is(err, flac.ErrNotFlacFile))
	// Output: true
}
