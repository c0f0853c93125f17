//go:build !unix

package platform

// CheckWritable is not implemented outside unix; failures surface from the
// first write instead.
func CheckWritable(string) error {
	return nil
}
