package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"milk-delivery-service/internal/config"
	"milk-delivery-service/internal/domain"
	"milk-delivery-service/internal/platform/obs"
	"strings"

	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsRecordStore implements RecordStore on the first sheet of a Google
// spreadsheet.
//
// Row 1 holds the column headers; every later row is one delivery. A RowRef
// is the 1-based sheet row number, so refs shift after a delete and must not
// outlive the request that listed them.
type SheetsRecordStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewRecordStore returns a store bound to spreadsheetID that authenticates as
// the service account. The access token is fetched on first use, then cached
// and refreshed by the token source instead of being re-issued per request.
// ctx scopes the token source, not a single call.
func NewRecordStore(
	ctx context.Context,
	spreadsheetID string,
	account config.ServiceAccount,
) (*SheetsRecordStore, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets store: spreadsheet id is empty")
	}

	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, errors.New("sheets store: service account email and private key are required")
	}

	conf := &jwt.Config{
		Email:        account.ClientEmail,
		PrivateKey:   []byte(account.PrivateKey),
		PrivateKeyID: account.PrivateKeyID,
		Scopes:       []string{sheets.SpreadsheetsScope},
		TokenURL:     account.TokenURI,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets store: create service: %w", err)
	}

	return NewRecordStoreWithService(svc, spreadsheetID), nil
}

// NewRecordStoreWithService wraps an already configured Sheets client.
func NewRecordStoreWithService(svc *sheets.Service, spreadsheetID string) *SheetsRecordStore {
	return &SheetsRecordStore{svc: svc, spreadsheetID: spreadsheetID}
}

// Return every non-blank data row of the first sheet.
func (s *SheetsRecordStore) ListRecords(ctx context.Context) (_ []domain.StoredRecord, err error) {
	defer obs.Time(ctx, "sheets.ListRecords")(&err)

	tab, err := s.loadTab(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	vr, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, tab.rangeRef()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list records: read values: %w", err)
	}

	if len(vr.Values) == 0 {
		return []domain.StoredRecord{}, nil
	}

	cols := newColumns(vr.Values[0])

	out := make([]domain.StoredRecord, 0, len(vr.Values)-1)
	for i, row := range vr.Values[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, domain.StoredRecord{
			Ref:            domain.RowRef(i + 2),
			DeliveryRecord: cols.record(row),
		})
	}

	return out, nil
}

func (s *SheetsRecordStore) AppendRecord(ctx context.Context, rec domain.DeliveryRecord) (err error) {
	defer obs.Time(ctx, "sheets.AppendRecord")(&err)

	tab, cols, err := s.loadHeader(ctx)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{cols.row(rec)},
	}

	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, tab.rangeRef(), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	return nil
}

// UpdateRecord writes every known column cell of the row at ref.
func (s *SheetsRecordStore) UpdateRecord(ctx context.Context, ref domain.RowRef, rec domain.DeliveryRecord) (err error) {
	defer obs.Time(ctx, "sheets.UpdateRecord")(&err)

	if ref < 2 {
		return fmt.Errorf("update record: invalid data row %d", ref)
	}

	tab, cols, err := s.loadHeader(ctx)
	if err != nil {
		return fmt.Errorf("update record row=%d: %w", ref, err)
	}

	data := make([]*sheets.ValueRange, 0, len(knownFields))
	for _, f := range knownFields {
		idx, ok := cols[f.name]
		if !ok {
			continue
		}
		data = append(data, &sheets.ValueRange{
			Range:  tab.cellRef(idx, int64(ref)),
			Values: [][]interface{}{{f.get(rec)}},
		})
	}

	if len(data) == 0 {
		return fmt.Errorf("update record row=%d: sheet %q has no known columns", ref, tab.title)
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update record row=%d: %w", ref, err)
	}

	return nil
}

// DeleteRecord removes the sheet row at ref, shifting later rows up.
func (s *SheetsRecordStore) DeleteRecord(ctx context.Context, ref domain.RowRef) (err error) {
	defer obs.Time(ctx, "sheets.DeleteRecord")(&err)

	if ref < 2 {
		return fmt.Errorf("delete record: invalid data row %d", ref)
	}

	tab, err := s.loadTab(ctx)
	if err != nil {
		return fmt.Errorf("delete record row=%d: %w", ref, err)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteDimension: &sheets.DeleteDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:         tab.id,
						Dimension:       "ROWS",
						StartIndex:      int64(ref) - 1,
						EndIndex:        int64(ref),
						ForceSendFields: []string{"SheetId", "StartIndex"},
					},
				},
			},
		},
	}

	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete record row=%d: %w", ref, err)
	}

	return nil
}

// loadTab resolves the first sheet of the spreadsheet.
func (s *SheetsRecordStore) loadTab(ctx context.Context) (sheetTab, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return sheetTab{}, fmt.Errorf("load spreadsheet info: %w", err)
	}

	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return sheetTab{}, fmt.Errorf("spreadsheet %q has no sheets", s.spreadsheetID)
	}

	p := ss.Sheets[0].Properties
	return sheetTab{id: p.SheetId, title: p.Title}, nil
}

func (s *SheetsRecordStore) loadHeader(ctx context.Context) (sheetTab, columns, error) {
	t, err := s.loadTab(ctx)
	if err != nil {
		return sheetTab{}, nil, err
	}

	vr, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, t.headerRef()).Context(ctx).Do()
	if err != nil {
		return sheetTab{}, nil, fmt.Errorf("read header row: %w", err)
	}

	if len(vr.Values) == 0 || isBlank(vr.Values[0]) {
		return sheetTab{}, nil, fmt.Errorf("sheet %q has no header row", t.title)
	}

	return t, newColumns(vr.Values[0]), nil
}
