// Package firstbank provides the exchange rate provider for First Bank of Taiwan.
//
// # Source
//
// Source: "FirstBank"
// URL: https://ibank.firstbank.com.tw/NetBank/7/0201.html?sh=none
// Anchor: TWD
//
// The bank publishes a single HTML table (table#table1) with a header row
// followed by one or two rows per currency:
//
//	美金(USD)  即期  31.50  31.90
//	美金(USD)  現金  31.20  32.00
//	日圓(JPY)  即期  0.21   0.22
//
// The first row of a currency holds its spot quote, an immediately repeated
// currency name holds its cash quote. A "-" cell means the price is not offered.
//
// # Rates
//
// The representative price of a currency is the mid of its spot buying and
// selling prices. Without a spot quote the cash buying price is used. The
// rate of a currency is the reciprocal of that price, so TWD is always 1 and
// every other rate is the amount of that currency one TWD buys.
//
// Rates can be re-based to any quoted currency; re-based rates are rounded
// half away from zero to 4 decimal places.
package firstbank
