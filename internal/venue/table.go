// Package venue holds the fixed directory of the 24 race courses.
package venue

import "github.com/yourusername/boatrace-predictor/internal/models"

// Table is the canonical venue list, ordered by code.
var Table = []models.Venue{
	{Code: "01", Name: "桐生", Location: "群馬県みどり市", Region: "関東", WaterType: "淡水"},
	{Code: "02", Name: "戸田", Location: "埼玉県戸田市", Region: "関東", WaterType: "淡水"},
	{Code: "03", Name: "江戸川", Location: "東京都江戸川区", Region: "関東", WaterType: "淡水"},
	{Code: "04", Name: "平和島", Location: "東京都大田区", Region: "関東", WaterType: "海水"},
	{Code: "05", Name: "多摩川", Location: "東京都府中市", Region: "関東", WaterType: "淡水"},
	{Code: "06", Name: "浜名湖", Location: "静岡県湖西市", Region: "東海", WaterType: "汽水"},
	{Code: "07", Name: "蒲郡", Location: "愛知県蒲郡市", Region: "東海", WaterType: "海水"},
	{Code: "08", Name: "常滑", Location: "愛知県常滑市", Region: "東海", WaterType: "海水"},
	{Code: "09", Name: "津", Location: "三重県津市", Region: "東海", WaterType: "海水"},
	{Code: "10", Name: "三国", Location: "福井県坂井市", Region: "近畿", WaterType: "海水"},
	{Code: "11", Name: "びわこ", Location: "滋賀県大津市", Region: "近畿", WaterType: "淡水"},
	{Code: "12", Name: "住之江", Location: "大阪府大阪市", Region: "近畿", WaterType: "淡水"},
	{Code: "13", Name: "尼崎", Location: "兵庫県尼崎市", Region: "近畿", WaterType: "淡水"},
	{Code: "14", Name: "鳴門", Location: "徳島県鳴門市", Region: "四国", WaterType: "海水"},
	{Code: "15", Name: "丸亀", Location: "香川県丸亀市", Region: "四国", WaterType: "海水"},
	{Code: "16", Name: "児島", Location: "岡山県倉敷市", Region: "中国", WaterType: "海水"},
	{Code: "17", Name: "宮島", Location: "広島県廿日市市", Region: "中国", WaterType: "海水"},
	{Code: "18", Name: "徳山", Location: "山口県周南市", Region: "中国", WaterType: "海水"},
	{Code: "19", Name: "下関", Location: "山口県下関市", Region: "中国", WaterType: "海水"},
	{Code: "20", Name: "若松", Location: "福岡県北九州市", Region: "九州", WaterType: "海水"},
	{Code: "21", Name: "芦屋", Location: "福岡県遠賀郡", Region: "九州", WaterType: "海水"},
	{Code: "22", Name: "福岡", Location: "福岡県福岡市", Region: "九州", WaterType: "海水"},
	{Code: "23", Name: "唐津", Location: "佐賀県唐津市", Region: "九州", WaterType: "海水"},
	{Code: "24", Name: "大村", Location: "長崎県大村市", Region: "九州", WaterType: "海水"},
}

// Seed returns a copy of Table for writing to a store.
func Seed() []models.Venue {
	out := make([]models.Venue, len(Table))
	copy(out, Table)
	return out
}
