package localstorage

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"bizharvest/internal/core/domain"
)

// Header is the first line of every record file. Column order is a stable contract
// for the spreadsheet tooling that reads these files.
const Header = "Company Name,Phone,Address,Years in Business,Owner,Website,Search Term,City"

const columns = 8

// EncodeRecords writes the header and one fully quoted row per record.
func EncodeRecords(w io.Writer, records []domain.BusinessRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Name,
			r.Phone,
			r.Address,
			strconv.Itoa(r.YearsInBusiness),
			r.Owner,
			r.Website,
			r.SearchTerm,
			r.Location,
		}
		for i, field := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(field))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// DecodeRecords reads a record file written by EncodeRecords. Blank lines are skipped.
func DecodeRecords(r io.Reader) ([]domain.BusinessRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records []domain.BusinessRecord
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "malformed record file")
		}
		if first {
			first = false
			if strings.Join(row, ",") == Header {
				continue
			}
		}
		if len(row) != columns {
			return nil, eris.Errorf("record has %d columns, want %d", len(row), columns)
		}
		years, _ := domain.ParseYears(row[3])
		records = append(records, domain.BusinessRecord{
			Name:            row[0],
			Phone:           row[1],
			Address:         row[2],
			YearsInBusiness: years,
			Owner:           row[4],
			Website:         row[5],
			SearchTerm:      row[6],
			Location:        row[7],
		})
	}
	return records, nil
}
