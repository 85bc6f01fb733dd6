package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"ferryops/internal/domain"
	"ferryops/internal/repositories"
	"ferryops/internal/utils"
)

// ReportService validates ranges, runs the rollups and renders CSV exports.
type ReportService struct {
	ReportRepo repositories.ReportRepo
}

func validateRange(dateFrom, dateTo string) error {
	from, err := utils.ParseDate(dateFrom)
	if err != nil {
		return domain.ValidationError{Field: "date_from", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	to, err := utils.ParseDate(dateTo)
	if err != nil {
		return domain.ValidationError{Field: "date_to", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	if to.Before(from) {
		return domain.ValidationError{Field: "date_to", Msg: "tanggal akhir sebelum tanggal mulai"}
	}
	return nil
}

func (s ReportService) Bookings(dateFrom, dateTo string, scheduleID int64) ([]repositories.BookingBucket, error) {
	if err := validateRange(dateFrom, dateTo); err != nil {
		return nil, err
	}
	buckets, err := s.ReportRepo.BookingReport(dateFrom, dateTo, scheduleID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return buckets, nil
}

func (s ReportService) Revenue(dateFrom, dateTo string) ([]repositories.RevenueBucket, error) {
	if err := validateRange(dateFrom, dateTo); err != nil {
		return nil, err
	}
	buckets, err := s.ReportRepo.RevenueReport(dateFrom, dateTo)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return buckets, nil
}

func (s ReportService) Occupancy(dateFrom, dateTo string) ([]repositories.OccupancyBucket, error) {
	if err := validateRange(dateFrom, dateTo); err != nil {
		return nil, err
	}
	buckets, err := s.ReportRepo.OccupancyReport(dateFrom, dateTo)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return buckets, nil
}

// BookingsCSV renders the booking report as a downloadable CSV: metadata rows
// (title, period, totals), a blank row, then header plus data.
func (s ReportService) BookingsCSV(dateFrom, dateTo string, scheduleID int64) ([]byte, error) {
	buckets, err := s.Bookings(dateFrom, dateTo, scheduleID)
	if err != nil {
		return nil, err
	}
	var totalBookings, totalPassengers, totalVehicles, totalCancelled int
	var totalRevenue int64
	for _, b := range buckets {
		totalBookings += b.Bookings
		totalPassengers += b.Passengers
		totalVehicles += b.Vehicles
		totalRevenue += b.Revenue
		totalCancelled += b.CancelledCnt
	}
	return renderCSV(
		"Laporan Booking", dateFrom, dateTo,
		fmt.Sprintf("Total %d booking, %d penumpang, %d kendaraan, pendapatan %s, %d dibatalkan",
			totalBookings, totalPassengers, totalVehicles, utils.FormatRupiah(totalRevenue), totalCancelled),
		[]string{"tanggal", "jumlah_booking", "penumpang", "kendaraan", "pendapatan", "dibatalkan"},
		len(buckets),
		func(i int) []string {
			b := buckets[i]
			return []string{
				b.Date,
				strconv.Itoa(b.Bookings),
				strconv.Itoa(b.Passengers),
				strconv.Itoa(b.Vehicles),
				strconv.FormatInt(b.Revenue, 10),
				strconv.Itoa(b.CancelledCnt),
			}
		},
	)
}

func (s ReportService) RevenueCSV(dateFrom, dateTo string) ([]byte, error) {
	buckets, err := s.Revenue(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	var totalGross, totalRefunded, totalNet int64
	for _, b := range buckets {
		totalGross += b.Gross
		totalRefunded += b.Refunded
		totalNet += b.Net
	}
	return renderCSV(
		"Laporan Pendapatan", dateFrom, dateTo,
		fmt.Sprintf("Total kotor %s, refund %s, bersih %s",
			utils.FormatRupiah(totalGross), utils.FormatRupiah(totalRefunded), utils.FormatRupiah(totalNet)),
		[]string{"rute_id", "asal", "tujuan", "jumlah_booking", "kotor", "refund", "bersih"},
		len(buckets),
		func(i int) []string {
			b := buckets[i]
			return []string{
				strconv.FormatInt(b.RouteID, 10),
				b.Origin,
				b.Destination,
				strconv.Itoa(b.Bookings),
				strconv.FormatInt(b.Gross, 10),
				strconv.FormatInt(b.Refunded, 10),
				strconv.FormatInt(b.Net, 10),
			}
		},
	)
}

func (s ReportService) OccupancyCSV(dateFrom, dateTo string) ([]byte, error) {
	buckets, err := s.Occupancy(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	var totalPassengers, totalCapacity int
	for _, b := range buckets {
		totalPassengers += b.Passengers
		totalCapacity += b.CapacityPassenger
	}
	return renderCSV(
		"Laporan Okupansi", dateFrom, dateTo,
		fmt.Sprintf("Total %d penumpang dari %d kapasitas", totalPassengers, totalCapacity),
		[]string{"jadwal_id", "tanggal", "asal", "tujuan", "kapal", "penumpang", "kapasitas_penumpang", "kendaraan", "kapasitas_kendaraan", "okupansi_persen"},
		len(buckets),
		func(i int) []string {
			b := buckets[i]
			return []string{
				strconv.FormatInt(b.ScheduleID, 10),
				b.Date,
				b.Origin,
				b.Destination,
				b.FerryName,
				strconv.Itoa(b.Passengers),
				strconv.Itoa(b.CapacityPassenger),
				strconv.Itoa(b.VehicleSlots),
				strconv.Itoa(b.CapacityVehicle),
				fmt.Sprintf("%.1f", b.OccupancyPercent),
			}
		},
	)
}

func renderCSV(title, dateFrom, dateTo, totals string, header []string, n int, row func(int) []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{title},
		{fmt.Sprintf("Periode %s s.d. %s", dateFrom, dateTo)},
		{totals},
		{},
		header,
	}
	for i := 0; i < n; i++ {
		records = append(records, row(i))
	}
	if err := w.WriteAll(records); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return buf.Bytes(), nil
}
