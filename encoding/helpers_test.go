package encoding

import "github.com/arloliu/qvd/endian"

func testEngine() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}
