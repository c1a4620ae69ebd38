package augmentations

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvColumns is the canonical header for catalog bulk imports, matching the
// wire names of the create request.
var csvColumns = []string{"type", "area", "name", "description", "activation", "energyConsumption"}

// RowError reports a bulk-import failure with the index of the offending
// data row (1-based, excluding the header). One bad row aborts the whole
// batch; nothing is persisted.
type RowError struct {
	Row int   `json:"row"`
	Err error `json:"-"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// DecodeCSV reads a catalog CSV document and converts every data row into a
// validated CreateCommand. The header row must contain exactly the
// canonical columns (case-insensitive). The first row that fails parsing or
// field validation aborts decoding with a RowError.
func DecodeCSV(r io.Reader) ([]CreateCommand, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty csv document", ErrInvalidBody)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	cmds := make([]CreateCommand, 0)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &RowError{Row: row, Err: err}
		}

		cmd := CreateCommand{
			Type:              record[0],
			Area:              record[1],
			Name:              record[2],
			Description:       record[3],
			Activation:        record[4],
			EnergyConsumption: record[5],
		}

		if err := cmd.Validate(); err != nil {
			return nil, &RowError{Row: row, Err: err}
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvColumns) {
		return fmt.Errorf("%w: header must contain the columns %s",
			ErrInvalidBody, strings.Join(csvColumns, ","))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvColumns[i]) {
			return fmt.Errorf("%w: unexpected header column %q, want %q",
				ErrInvalidBody, col, csvColumns[i])
		}
	}
	return nil
}
