package imp

// ApplyMapping remaps the buffer in place. Grayscale samples go through the
// table directly. RGB pixels get the equalized value of their luma written
// to all three channels, which discards their chrominance.
func ApplyMapping(buf *Buffer, m *MappingTable, workers int) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	stride := buf.rowStride()
	return parallelRows(buf.Height, workers, func(start, end int) error {
		rows := buf.Pix[start*stride : end*stride]
		if buf.ColorSpace == Grayscale {
			for i, v := range rows {
				rows[i] = m[v]
			}
			return nil
		}
		for i := 0; i < len(rows); i += 3 {
			v := m[Luma(rows[i], rows[i+1], rows[i+2])]
			rows[i], rows[i+1], rows[i+2] = v, v, v
		}
		return nil
	})
}
