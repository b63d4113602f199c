package words

var devWords = []string{"海", "空", "森", "夜", "火"}

var fullWords = []string{
	"海", "空", "森", "夜", "火", "雪", "雨", "風", "雷", "虹",
	"太陽", "月", "星", "雲", "霧", "砂漠", "山", "川", "湖", "島",
	"春", "夏", "秋", "冬", "朝", "昼", "夕方", "真夜中", "夜明け", "黄昏",
	"喜び", "悲しみ", "怒り", "恐怖", "驚き", "安心", "不安", "孤独", "希望", "絶望",
	"愛", "嫉妬", "勇気", "優しさ", "誇り", "恥", "退屈", "情熱", "静けさ", "懐かしさ",
	"音楽", "ジャズ", "ロック", "クラシック", "沈黙", "笑い声", "鐘", "ピアノ", "太鼓", "口笛",
	"りんご", "レモン", "コーヒー", "チョコレート", "抹茶", "ワイン", "牛乳", "パン", "カレー", "寿司",
	"猫", "犬", "カラス", "金魚", "象", "狐", "蝶", "鯨", "蛇", "兎",
	"学校", "病院", "図書館", "駅", "教会", "公園", "海辺", "都会", "田舎", "宇宙",
	"月曜日", "金曜日", "日曜日", "誕生日", "正月", "お祭り", "卒業", "初恋", "夢", "記憶",
	"未来", "過去", "時間",
}
