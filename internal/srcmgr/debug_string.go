package srcmgr

import "github.com/standardbeagle/cptoyc/internal/idcodec"

// LocationString renders loc as a compact base-63 id for debug/log
// output (e.g. -dump-raw-tokens), tagging instantiation locations with
// a leading "~" so they read distinctly from file locations.
func (m *Manager) LocationString(loc SourceLocation) string {
	if loc.IsInstantiationLocation() {
		return idcodec.EncodeInstantiationLoc(loc.instantiationIndex())
	}
	fid, offset := m.Decompose(loc)
	return idcodec.EncodeFileLoc(fid, offset)
}
